package model

import "testing"

func TestOrderPair(t *testing.T) {
	a, b := OrderPair("zed", "amy")
	if a != "amy" || b != "zed" {
		t.Errorf("OrderPair(zed, amy) = (%q, %q), want (amy, zed)", a, b)
	}
	a, b = OrderPair("amy", "zed")
	if a != "amy" || b != "zed" {
		t.Errorf("OrderPair(amy, zed) = (%q, %q), want (amy, zed)", a, b)
	}
}

func TestConversationParticipants(t *testing.T) {
	cv := Conversation{UserAUID: "amy", UserBUID: "zed"}
	if !cv.HasParticipant("amy") || !cv.HasParticipant("zed") {
		t.Error("participants should be recognized")
	}
	if cv.HasParticipant("bob") {
		t.Error("bob is not a participant")
	}
	if got := cv.OtherParticipant("amy"); got != "zed" {
		t.Errorf("OtherParticipant(amy) = %q, want zed", got)
	}
	if got := cv.OtherParticipant("zed"); got != "amy" {
		t.Errorf("OtherParticipant(zed) = %q, want amy", got)
	}
}
