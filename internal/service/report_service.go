package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/xlance-app/xlance-backend/internal/model"
	"github.com/xlance-app/xlance-backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Placeholder dashboard figures. These are stated constants, not computed;
// wiring them to review data is tracked separately.
const (
	PlaceholderPartnerRating = 4.8
	PlaceholderRepeatHires   = 38
	PlaceholderSatisfaction  = 96
	PlaceholderOnBudget      = 92
)

type ReportSummary struct {
	Total        int64   `json:"total"`
	ActiveOrders int     `json:"activeOrders"`
	ThisMonth    int64   `json:"thisMonth"`
	LastMonth    int64   `json:"lastMonth"`
	Trend        float64 `json:"trend"`
}

type MonthPoint struct {
	Month string `json:"month"`
	Value int64  `json:"value"`
}

type CategorySlice struct {
	Name    string `json:"name"`
	Value   int64  `json:"value"`
	Percent int    `json:"percent"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
}

type TransactionRow struct {
	OrderID     uint64 `json:"orderId"`
	Date        string `json:"date"`
	Counterpart string `json:"counterpart"`
	PaymentType string `json:"paymentType"`
	Status      string `json:"status"`
	Amount      int64  `json:"amount"`
}

type TransactionPage struct {
	Rows       []TransactionRow `json:"rows"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
}

type Partner struct {
	UID    string  `json:"uid"`
	Name   string  `json:"name"`
	Amount int64   `json:"amount"`
	Orders int     `json:"orders"`
	Rating float64 `json:"rating"`
}

type PerformanceMetrics struct {
	CompletionRate int `json:"completionRate"`
	DeliveryRate   int `json:"deliveryRate"`
	RepeatHires    int `json:"repeatHires"`
	Satisfaction   int `json:"satisfaction"`
	OnBudget       int `json:"onBudget"`
}

type ReportOverview struct {
	Summary      ReportSummary      `json:"summary"`
	Monthly      []MonthPoint       `json:"monthly"`
	Categories   []CategorySlice    `json:"categories"`
	Transactions TransactionPage    `json:"transactions"`
	TopPartners  []Partner          `json:"topPartners"`
	Metrics      PerformanceMetrics `json:"metrics"`
}

type ReportService interface {
	Summary(ctx context.Context, uid string, role model.Role) (ReportSummary, error)
	Monthly(ctx context.Context, uid string, role model.Role) ([]MonthPoint, error)
	Categories(ctx context.Context, uid string, role model.Role) ([]CategorySlice, error)
	Transactions(ctx context.Context, uid string, role model.Role, page, pageSize int) (TransactionPage, error)
	TopPartners(ctx context.Context, uid string, role model.Role) ([]Partner, error)
	Metrics(ctx context.Context, uid string, role model.Role) (PerformanceMetrics, error)
	Overview(ctx context.Context, uid string, role model.Role, page, pageSize int) (*ReportOverview, error)
}

type reportService struct {
	orderRepo   repository.OrderRepository
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

func NewReportService(orderRepo repository.OrderRepository, profileRepo repository.ProfileRepository) ReportService {
	return &reportService{orderRepo: orderRepo, profileRepo: profileRepo, now: time.Now}
}

// ordersFor selects the role-appropriate side: freelancers report on orders
// they sold, everyone else on orders they bought.
func (s *reportService) ordersFor(ctx context.Context, uid string, role model.Role) ([]model.Order, error) {
	if role == model.RoleFreelancer {
		return s.orderRepo.ListBySeller(ctx, uid)
	}
	return s.orderRepo.ListByBuyer(ctx, uid)
}

// orderAmount prefers the grand total, falling back to price for rows
// written before fees were recorded.
func orderAmount(o *model.Order) int64 {
	if o.Total > 0 {
		return o.Total
	}
	return o.Price
}

func counterpart(o *model.Order, role model.Role) string {
	if role == model.RoleFreelancer {
		return o.BuyerUID
	}
	return o.SellerUID
}

func sameMonth(t time.Time, ref time.Time) bool {
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}

// Trend is the month-over-month percentage change, one decimal. A move from
// zero to anything reads as 100; flat zero reads as 0.
func Trend(lastMonth, thisMonth int64) float64 {
	if lastMonth > 0 {
		return math.Round((float64(thisMonth-lastMonth)/float64(lastMonth))*1000) / 10
	}
	if thisMonth > 0 {
		return 100
	}
	return 0
}

func (s *reportService) Summary(ctx context.Context, uid string, role model.Role) (ReportSummary, error) {
	orders, err := s.ordersFor(ctx, uid, role)
	if err != nil {
		return ReportSummary{}, err
	}
	now := s.now()
	prev := now.AddDate(0, -1, 0)
	var sum ReportSummary
	for i := range orders {
		o := &orders[i]
		switch o.Status {
		case model.OrderStatusActive, model.OrderStatusDelivered:
			sum.ActiveOrders++
		case model.OrderStatusCompleted:
			amount := orderAmount(o)
			sum.Total += amount
			if sameMonth(o.CreatedAt, now) {
				sum.ThisMonth += amount
			} else if sameMonth(o.CreatedAt, prev) {
				sum.LastMonth += amount
			}
		}
	}
	sum.Trend = Trend(sum.LastMonth, sum.ThisMonth)
	return sum, nil
}

// Monthly buckets completed orders into the trailing 12 calendar months,
// current month inclusive, oldest first.
func (s *reportService) Monthly(ctx context.Context, uid string, role model.Role) ([]MonthPoint, error) {
	orders, err := s.ordersFor(ctx, uid, role)
	if err != nil {
		return nil, err
	}
	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)

	points := make([]MonthPoint, 12)
	index := make(map[int]int, 12)
	for i := 0; i < 12; i++ {
		m := start.AddDate(0, i, 0)
		points[i] = MonthPoint{Month: m.Format("Jan")}
		index[m.Year()*12+int(m.Month())] = i
	}
	for i := range orders {
		o := &orders[i]
		if o.Status != model.OrderStatusCompleted {
			continue
		}
		key := o.CreatedAt.Year()*12 + int(o.CreatedAt.Month())
		if pos, ok := index[key]; ok {
			points[pos].Value += orderAmount(o)
		}
	}
	return points, nil
}

type categoryStyle struct {
	Icon  string
	Color string
}

var categoryStyles = map[string]categoryStyle{
	"Web Development":   {"💻", "#6366f1"},
	"Graphic Design":    {"🎨", "#ec4899"},
	"Writing":           {"✍️", "#f59e0b"},
	"Digital Marketing": {"📣", "#10b981"},
	"Video Editing":     {"🎬", "#ef4444"},
	"Music & Audio":     {"🎵", "#8b5cf6"},
	"Data Science":      {"📊", "#0ea5e9"},
}

const defaultCategoryIcon = "📦"

var categoryPalette = []string{"#6366f1", "#ec4899", "#f59e0b", "#10b981", "#ef4444", "#8b5cf6", "#0ea5e9"}

func (s *reportService) Categories(ctx context.Context, uid string, role model.Role) ([]CategorySlice, error) {
	orders, err := s.ordersFor(ctx, uid, role)
	if err != nil {
		return nil, err
	}
	sums := make(map[string]int64)
	var total int64
	for i := range orders {
		o := &orders[i]
		if o.Status != model.OrderStatusCompleted {
			continue
		}
		name := o.Category
		if name == "" {
			name = "Other"
		}
		amount := orderAmount(o)
		sums[name] += amount
		total += amount
	}
	slices := make([]CategorySlice, 0, len(sums))
	for name, value := range sums {
		slices = append(slices, CategorySlice{Name: name, Value: value})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Value != slices[j].Value {
			return slices[i].Value > slices[j].Value
		}
		return slices[i].Name < slices[j].Name
	})
	for i := range slices {
		if total > 0 {
			// Independent rounding; the percents may not sum to 100.
			slices[i].Percent = int(math.Round(float64(slices[i].Value) / float64(total) * 100))
		}
		if style, ok := categoryStyles[slices[i].Name]; ok {
			slices[i].Icon = style.Icon
			slices[i].Color = style.Color
		} else {
			slices[i].Icon = defaultCategoryIcon
			slices[i].Color = categoryPalette[i%len(categoryPalette)]
		}
	}
	return slices, nil
}

// TransactionStatusLabel maps order status to the ledger wording.
func TransactionStatusLabel(status model.OrderStatus) string {
	switch status {
	case model.OrderStatusCompleted:
		return "Released"
	case model.OrderStatusActive:
		return "In Progress"
	case model.OrderStatusDelivered:
		return "Pending Review"
	}
	return string(status)
}

// Paginate slices a 1-indexed page of size pageSize out of n rows and
// reports the page count.
func Paginate(n, page, pageSize int) (start, end, totalPages int) {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}
	totalPages = (n + pageSize - 1) / pageSize
	start = (page - 1) * pageSize
	if start > n {
		start = n
	}
	end = start + pageSize
	if end > n {
		end = n
	}
	return start, end, totalPages
}

func (s *reportService) Transactions(ctx context.Context, uid string, role model.Role, page, pageSize int) (TransactionPage, error) {
	orders, err := s.ordersFor(ctx, uid, role)
	if err != nil {
		return TransactionPage{}, err
	}
	paymentType := "Payment"
	if role == model.RoleFreelancer {
		paymentType = "Earning"
	}
	names := make(map[string]string)
	rows := make([]TransactionRow, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		other := counterpart(o, role)
		name, ok := names[other]
		if !ok {
			name = other
			if p, err := s.profileRepo.FindByUID(ctx, other); err == nil && p.DisplayName != "" {
				name = p.DisplayName
			}
			names[other] = name
		}
		rows = append(rows, TransactionRow{
			OrderID:     o.ID,
			Date:        o.CreatedAt.Format("Jan 2, 2006"),
			Counterpart: name,
			PaymentType: paymentType,
			Status:      TransactionStatusLabel(o.Status),
			Amount:      orderAmount(o),
		})
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}
	start, end, totalPages := Paginate(len(rows), page, pageSize)
	return TransactionPage{
		Rows:       rows[start:end],
		Page:       page,
		PageSize:   pageSize,
		Total:      len(rows),
		TotalPages: totalPages,
	}, nil
}

func (s *reportService) TopPartners(ctx context.Context, uid string, role model.Role) ([]Partner, error) {
	orders, err := s.ordersFor(ctx, uid, role)
	if err != nil {
		return nil, err
	}
	byUID := make(map[string]*Partner)
	for i := range orders {
		o := &orders[i]
		if o.Status != model.OrderStatusCompleted {
			continue
		}
		other := counterpart(o, role)
		p, ok := byUID[other]
		if !ok {
			p = &Partner{UID: other, Rating: PlaceholderPartnerRating}
			byUID[other] = p
		}
		p.Amount += orderAmount(o)
		p.Orders++
	}
	partners := make([]Partner, 0, len(byUID))
	for _, p := range byUID {
		partners = append(partners, *p)
	}
	sort.Slice(partners, func(i, j int) bool {
		if partners[i].Amount != partners[j].Amount {
			return partners[i].Amount > partners[j].Amount
		}
		return partners[i].UID < partners[j].UID
	})
	if len(partners) > 5 {
		partners = partners[:5]
	}
	for i := range partners {
		partners[i].Name = partners[i].UID
		if p, err := s.profileRepo.FindByUID(ctx, partners[i].UID); err == nil && p.DisplayName != "" {
			partners[i].Name = p.DisplayName
		}
	}
	return partners, nil
}

func (s *reportService) Metrics(ctx context.Context, uid string, role model.Role) (PerformanceMetrics, error) {
	orders, err := s.ordersFor(ctx, uid, role)
	if err != nil {
		return PerformanceMetrics{}, err
	}
	m := PerformanceMetrics{
		RepeatHires:  PlaceholderRepeatHires,
		Satisfaction: PlaceholderSatisfaction,
		OnBudget:     PlaceholderOnBudget,
	}
	if len(orders) == 0 {
		return m, nil
	}
	var completed, delivered int
	for i := range orders {
		switch orders[i].Status {
		case model.OrderStatusCompleted:
			completed++
		case model.OrderStatusDelivered:
			delivered++
		}
	}
	total := len(orders)
	m.CompletionRate = int(math.Round(float64(completed) / float64(total) * 100))
	m.DeliveryRate = int(math.Round(float64(completed+delivered) / float64(total) * 100))
	return m, nil
}

// Overview assembles every dashboard section in one call; the six fetches
// are independent and run concurrently.
func (s *reportService) Overview(ctx context.Context, uid string, role model.Role, page, pageSize int) (*ReportOverview, error) {
	var ov ReportOverview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ov.Summary, err = s.Summary(ctx, uid, role)
		return err
	})
	g.Go(func() error {
		var err error
		ov.Monthly, err = s.Monthly(ctx, uid, role)
		return err
	})
	g.Go(func() error {
		var err error
		ov.Categories, err = s.Categories(ctx, uid, role)
		return err
	})
	g.Go(func() error {
		var err error
		ov.Transactions, err = s.Transactions(ctx, uid, role, page, pageSize)
		return err
	})
	g.Go(func() error {
		var err error
		ov.TopPartners, err = s.TopPartners(ctx, uid, role)
		return err
	})
	g.Go(func() error {
		var err error
		ov.Metrics, err = s.Metrics(ctx, uid, role)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}
