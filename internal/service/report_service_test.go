package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xlance-app/xlance-backend/internal/model"
)

func TestTrend(t *testing.T) {
	cases := []struct {
		last, this int64
		want       float64
	}{
		{1000, 1500, 50},
		{1000, 900, -10},
		{2100, 1050, -50},
		{300, 400, 33.3},
		{0, 500, 100},
		{0, 0, 0},
		{500, 0, -100},
	}
	for _, tc := range cases {
		if got := Trend(tc.last, tc.this); got != tc.want {
			t.Errorf("Trend(%d, %d) = %v, want %v", tc.last, tc.this, got, tc.want)
		}
	}
}

func TestTransactionStatusLabel(t *testing.T) {
	cases := []struct {
		status model.OrderStatus
		want   string
	}{
		{model.OrderStatusCompleted, "Released"},
		{model.OrderStatusActive, "In Progress"},
		{model.OrderStatusDelivered, "Pending Review"},
		{model.OrderStatusCancelled, "cancelled"},
	}
	for _, tc := range cases {
		if got := TransactionStatusLabel(tc.status); got != tc.want {
			t.Errorf("TransactionStatusLabel(%q) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		n, page, pageSize      int
		start, end, totalPages int
	}{
		{23, 1, 10, 0, 10, 3},
		{23, 3, 10, 20, 23, 3},
		{23, 5, 10, 23, 23, 3},
		{0, 1, 10, 0, 0, 0},
		{10, 1, 10, 0, 10, 1},
		{5, 0, 0, 0, 5, 1},
	}
	for _, tc := range cases {
		start, end, totalPages := Paginate(tc.n, tc.page, tc.pageSize)
		if start != tc.start || end != tc.end || totalPages != tc.totalPages {
			t.Errorf("Paginate(%d, %d, %d) = (%d, %d, %d), want (%d, %d, %d)",
				tc.n, tc.page, tc.pageSize, start, end, totalPages, tc.start, tc.end, tc.totalPages)
		}
	}
}

func fixedReportClock() time.Time {
	return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func newTestReportService(orders *fakeOrderRepo, profiles *fakeProfileRepo) *reportService {
	return &reportService{orderRepo: orders, profileRepo: profiles, now: fixedReportClock}
}

func completedOrder(seller, buyer, category string, total int64, created time.Time) *model.Order {
	return &model.Order{
		BuyerUID:  buyer,
		SellerUID: seller,
		Category:  category,
		Total:     total,
		Status:    model.OrderStatusCompleted,
		CreatedAt: created,
	}
}

func TestReportSummary(t *testing.T) {
	orders := newFakeOrderRepo()
	profiles := newFakeProfileRepo()
	ctx := context.Background()
	now := fixedReportClock()

	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Writing", 1050, now)))
	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b2", "Writing", 2100, now.AddDate(0, -1, 0))))
	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Writing", 500, now.AddDate(0, -2, 0))))
	require.NoError(t, orders.Create(ctx, &model.Order{SellerUID: "s1", BuyerUID: "b3", Status: model.OrderStatusActive, CreatedAt: now}))
	require.NoError(t, orders.Create(ctx, &model.Order{SellerUID: "s1", BuyerUID: "b3", Status: model.OrderStatusDelivered, CreatedAt: now}))
	require.NoError(t, orders.Create(ctx, &model.Order{SellerUID: "s1", BuyerUID: "b3", Status: model.OrderStatusCancelled, CreatedAt: now}))
	// someone else's sale must not count
	require.NoError(t, orders.Create(ctx, completedOrder("s2", "b1", "Writing", 9999, now)))

	svc := newTestReportService(orders, profiles)
	sum, err := svc.Summary(ctx, "s1", model.RoleFreelancer)
	require.NoError(t, err)

	assert.Equal(t, int64(3650), sum.Total)
	assert.Equal(t, int64(1050), sum.ThisMonth)
	assert.Equal(t, int64(2100), sum.LastMonth)
	assert.Equal(t, 2, sum.ActiveOrders)
	assert.Equal(t, -50.0, sum.Trend)
}

func TestReportSummaryClientSide(t *testing.T) {
	orders := newFakeOrderRepo()
	profiles := newFakeProfileRepo()
	ctx := context.Background()
	now := fixedReportClock()

	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Writing", 700, now)))
	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b2", "Writing", 9999, now)))

	svc := newTestReportService(orders, profiles)
	sum, err := svc.Summary(ctx, "b1", model.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, int64(700), sum.Total)
	assert.Equal(t, 100.0, sum.Trend)
}

func TestReportMonthly(t *testing.T) {
	orders := newFakeOrderRepo()
	profiles := newFakeProfileRepo()
	ctx := context.Background()
	now := fixedReportClock()

	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Writing", 100, now)))
	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Writing", 200, now)))
	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Writing", 50, now.AddDate(0, -1, 0))))
	// 13 months back falls outside the window
	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Writing", 999, now.AddDate(-1, -1, 0))))
	// active orders never count as revenue
	require.NoError(t, orders.Create(ctx, &model.Order{SellerUID: "s1", BuyerUID: "b1", Total: 400, Status: model.OrderStatusActive, CreatedAt: now}))

	svc := newTestReportService(orders, profiles)
	points, err := svc.Monthly(ctx, "s1", model.RoleFreelancer)
	require.NoError(t, err)
	require.Len(t, points, 12)

	assert.Equal(t, "Apr", points[0].Month)
	assert.Equal(t, "Mar", points[11].Month)
	assert.Equal(t, int64(300), points[11].Value)
	assert.Equal(t, int64(50), points[10].Value)
	var rest int64
	for _, p := range points[:10] {
		rest += p.Value
	}
	assert.Equal(t, int64(0), rest)
}

func TestReportCategories(t *testing.T) {
	orders := newFakeOrderRepo()
	profiles := newFakeProfileRepo()
	ctx := context.Background()
	now := fixedReportClock()

	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Web Development", 300, now)))
	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Writing", 100, now)))
	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Quilting", 100, now)))

	svc := newTestReportService(orders, profiles)
	slices, err := svc.Categories(ctx, "s1", model.RoleFreelancer)
	require.NoError(t, err)
	require.Len(t, slices, 3)

	assert.Equal(t, "Web Development", slices[0].Name)
	assert.Equal(t, int64(300), slices[0].Value)
	assert.Equal(t, 60, slices[0].Percent)
	assert.Equal(t, "💻", slices[0].Icon)

	// equal values sort by name
	assert.Equal(t, "Quilting", slices[1].Name)
	assert.Equal(t, 20, slices[1].Percent)
	// unknown category gets the fallback icon and a palette color
	assert.Equal(t, "📦", slices[1].Icon)
	assert.NotEmpty(t, slices[1].Color)

	assert.Equal(t, "Writing", slices[2].Name)
	assert.Equal(t, 20, slices[2].Percent)
}

func TestReportTransactions(t *testing.T) {
	orders := newFakeOrderRepo()
	profiles := newFakeProfileRepo()
	ctx := context.Background()
	now := fixedReportClock()

	profiles.profiles["b1"] = &model.UserProfile{UID: "b1", DisplayName: "Beatrice"}

	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Writing", 100, now)))
	require.NoError(t, orders.Create(ctx, &model.Order{SellerUID: "s1", BuyerUID: "b2", Price: 200, Status: model.OrderStatusActive, CreatedAt: now}))
	require.NoError(t, orders.Create(ctx, &model.Order{SellerUID: "s1", BuyerUID: "b1", Total: 300, Status: model.OrderStatusDelivered, CreatedAt: now}))

	svc := newTestReportService(orders, profiles)
	page, err := svc.Transactions(ctx, "s1", model.RoleFreelancer, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Rows, 2)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.PageSize)

	for _, row := range page.Rows {
		assert.Equal(t, "Earning", row.PaymentType)
	}
	named := 0
	for _, row := range page.Rows {
		if row.Counterpart == "Beatrice" {
			named++
		}
	}
	assert.Greater(t, named, 0, "counterpart names should resolve from profiles")

	second, err := svc.Transactions(ctx, "s1", model.RoleFreelancer, 2, 2)
	require.NoError(t, err)
	assert.Len(t, second.Rows, 1)
}

func TestReportTopPartners(t *testing.T) {
	orders := newFakeOrderRepo()
	profiles := newFakeProfileRepo()
	ctx := context.Background()
	now := fixedReportClock()

	profiles.profiles["b1"] = &model.UserProfile{UID: "b1", DisplayName: "Beatrice"}

	buyers := []string{"b1", "b2", "b3", "b4", "b5", "b6", "b7"}
	for i, b := range buyers {
		require.NoError(t, orders.Create(ctx, completedOrder("s1", b, "Writing", int64(100*(len(buyers)-i)), now)))
	}
	// second order for b1 bumps both amount and count
	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Writing", 50, now)))

	svc := newTestReportService(orders, profiles)
	partners, err := svc.TopPartners(ctx, "s1", model.RoleFreelancer)
	require.NoError(t, err)
	require.Len(t, partners, 5)

	assert.Equal(t, "b1", partners[0].UID)
	assert.Equal(t, "Beatrice", partners[0].Name)
	assert.Equal(t, int64(750), partners[0].Amount)
	assert.Equal(t, 2, partners[0].Orders)
	assert.Equal(t, PlaceholderPartnerRating, partners[0].Rating)
	// b2 has no profile row; UID stands in for the name
	assert.Equal(t, "b2", partners[1].Name)
}

func TestReportMetrics(t *testing.T) {
	orders := newFakeOrderRepo()
	profiles := newFakeProfileRepo()
	ctx := context.Background()
	now := fixedReportClock()

	svc := newTestReportService(orders, profiles)

	m, err := svc.Metrics(ctx, "s1", model.RoleFreelancer)
	require.NoError(t, err)
	assert.Equal(t, 0, m.CompletionRate)
	assert.Equal(t, PlaceholderRepeatHires, m.RepeatHires)
	assert.Equal(t, PlaceholderSatisfaction, m.Satisfaction)
	assert.Equal(t, PlaceholderOnBudget, m.OnBudget)

	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Writing", 100, now)))
	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Writing", 100, now)))
	require.NoError(t, orders.Create(ctx, &model.Order{SellerUID: "s1", BuyerUID: "b1", Status: model.OrderStatusDelivered, CreatedAt: now}))
	require.NoError(t, orders.Create(ctx, &model.Order{SellerUID: "s1", BuyerUID: "b1", Status: model.OrderStatusActive, CreatedAt: now}))

	m, err = svc.Metrics(ctx, "s1", model.RoleFreelancer)
	require.NoError(t, err)
	assert.Equal(t, 50, m.CompletionRate)
	assert.Equal(t, 75, m.DeliveryRate)
}

func TestReportOverview(t *testing.T) {
	orders := newFakeOrderRepo()
	profiles := newFakeProfileRepo()
	ctx := context.Background()
	now := fixedReportClock()

	require.NoError(t, orders.Create(ctx, completedOrder("s1", "b1", "Writing", 100, now)))

	svc := newTestReportService(orders, profiles)
	ov, err := svc.Overview(ctx, "s1", model.RoleFreelancer, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(100), ov.Summary.Total)
	assert.Len(t, ov.Monthly, 12)
	assert.Len(t, ov.Categories, 1)
	assert.Equal(t, 1, ov.Transactions.Total)
	assert.Len(t, ov.TopPartners, 1)
	assert.Equal(t, 100, ov.Metrics.CompletionRate)
}
