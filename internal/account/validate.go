package account

import (
	"regexp"
	"strings"
	"unicode"
)

// Initials returns the uppercased first letters of the first two words of a
// display name, or the first letter alone for single-word names.
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	first := []rune(fields[0])
	out := string(unicode.ToUpper(first[0]))
	if len(fields) > 1 {
		second := []rune(fields[1])
		out += string(unicode.ToUpper(second[0]))
	}
	return out
}

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// PasswordStrength is the scored result of the signup password check.
type PasswordStrength struct {
	Score   int
	Label   string
	IsValid bool
}

const minPasswordLength = 12

// CheckPassword scores a candidate password. Points: lowercase 15, uppercase
// 15, digit 15, special 20, no character repeated 3 times in a row 10, no
// 3-character ascending or descending alphanumeric run 5. A password is valid
// when the score reaches 60 and the length reaches 12.
func CheckPassword(p string) PasswordStrength {
	score := 0
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if hasLower {
		score += 15
	}
	if hasUpper {
		score += 15
	}
	if hasDigit {
		score += 15
	}
	if hasSpecial {
		score += 20
	}
	if !hasTripleRepeat(p) {
		score += 10
	}
	if !hasSequentialRun(p) {
		score += 5
	}

	label := "Weak"
	switch {
	case score >= 75:
		label = "Strong"
	case score >= 60:
		label = "Good"
	case score >= 40:
		label = "Fair"
	}

	return PasswordStrength{
		Score:   score,
		Label:   label,
		IsValid: score >= 60 && len(p) >= minPasswordLength,
	}
}

func hasTripleRepeat(p string) bool {
	runes := []rune(p)
	for i := 2; i < len(runes); i++ {
		if runes[i] == runes[i-1] && runes[i-1] == runes[i-2] {
			return true
		}
	}
	return false
}

// hasSequentialRun reports a 3-character ascending or descending run of
// letters or digits, case-insensitively ("abc", "321", "CBA").
func hasSequentialRun(p string) bool {
	runes := []rune(strings.ToLower(p))
	for i := 2; i < len(runes); i++ {
		a, b, c := runes[i-2], runes[i-1], runes[i]
		if !isAlnum(a) || !isAlnum(b) || !isAlnum(c) {
			continue
		}
		if b == a+1 && c == b+1 {
			return true
		}
		if b == a-1 && c == b-1 {
			return true
		}
	}
	return false
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
