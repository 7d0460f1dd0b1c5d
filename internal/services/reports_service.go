package services

import (
	"context"
	"fmt"
	"time"

	"khanza/internal/domain"
	"khanza/internal/domain/models"
	"khanza/internal/repositories"
	"khanza/internal/utils"
)

type ReportsService struct {
	Bookings   repositories.BookingRepository
	Vouchers   repositories.VoucherRepository
	Newsletter repositories.NewsletterRepository
	Catalog    repositories.CatalogRepository
	Now        func() time.Time
}

func (s ReportsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// reportWindow is the half-open range [From, To) of a period plus its bucket labels.
type reportWindow struct {
	From   time.Time
	To     time.Time
	Title  string
	Labels []string
}

func windowFor(p domain.ReportPeriod, now time.Time) reportWindow {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case domain.PeriodWeek:
		from := day.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
		labels := make([]string, 7)
		for i := range labels {
			labels[i] = utils.WeekdayID(from.AddDate(0, 0, i).Weekday())
		}
		return reportWindow{From: from, To: from.AddDate(0, 0, 7), Title: "Minggu Ini", Labels: labels}
	case domain.PeriodYear:
		from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		labels := make([]string, 12)
		for i := range labels {
			labels[i] = utils.MonthShortID(time.Month(i + 1))
		}
		return reportWindow{From: from, To: from.AddDate(1, 0, 0), Title: fmt.Sprintf("Tahun %d", now.Year()), Labels: labels}
	default:
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to := from.AddDate(0, 1, 0)
		days := to.AddDate(0, 0, -1).Day()
		labels := make([]string, (days+6)/7)
		for i := range labels {
			labels[i] = fmt.Sprintf("Minggu %d", i+1)
		}
		return reportWindow{From: from, To: to, Title: fmt.Sprintf("%s %d", utils.MonthShortID(now.Month()), now.Year()), Labels: labels}
	}
}

// bucketIndex returns the bucket of t inside w, or -1 when outside.
func (w reportWindow) bucketIndex(p domain.ReportPeriod, t time.Time) int {
	t = t.In(w.From.Location())
	if t.Before(w.From) || !t.Before(w.To) {
		return -1
	}
	switch p {
	case domain.PeriodWeek:
		return (int(t.Weekday()) + 6) % 7
	case domain.PeriodYear:
		return int(t.Month()) - 1
	default:
		// week-of-month is ceil(day/7); day 29..31 falls in bucket 5
		return (t.Day() - 1) / 7
	}
}

// Bucketize counts completed bookings per bucket of period around now.
func Bucketize(p domain.ReportPeriod, now time.Time, rows []models.CompletedBooking) models.ReportSummary {
	w := windowFor(p, now)
	buckets := make([]models.ReportBucket, len(w.Labels))
	for i, l := range w.Labels {
		buckets[i].Label = l
	}
	total := 0
	for _, r := range rows {
		if idx := w.bucketIndex(p, r.ScheduledAt); idx >= 0 && idx < len(buckets) {
			buckets[idx].Count++
			total++
		}
	}
	return models.ReportSummary{Period: string(p), Title: w.Title, Buckets: buckets, Total: total}
}

func (s ReportsService) Summary(ctx context.Context, raw string) (models.ReportSummary, error) {
	p, ok := domain.ParseReportPeriod(raw)
	if !ok {
		return models.ReportSummary{}, domain.ValidationError{Field: "period", Msg: "Periode harus week, month, atau year"}
	}
	now := s.now()
	w := windowFor(p, now)
	rows, err := s.Bookings.ListCompleted(ctx, repositories.CompletedFilter{From: w.From, To: w.To})
	if err != nil {
		return models.ReportSummary{}, domain.InternalError{Err: err}
	}
	return Bucketize(p, now, rows), nil
}

// Export pairs the period summary with every completed booking.
func (s ReportsService) Export(ctx context.Context, raw string) (models.ReportExport, error) {
	summary, err := s.Summary(ctx, raw)
	if err != nil {
		return models.ReportExport{}, err
	}
	rows, err := s.Bookings.ListCompleted(ctx, repositories.CompletedFilter{})
	if err != nil {
		return models.ReportExport{}, domain.InternalError{Err: err}
	}
	return models.ReportExport{Summary: summary, Rows: rows}, nil
}

func (s ReportsService) Stats(ctx context.Context) (models.DashboardStats, error) {
	var (
		out models.DashboardStats
		err error
	)
	if out.TotalBookings, err = s.Bookings.Count(ctx); err != nil {
		return out, domain.InternalError{Err: err}
	}
	if out.AvailableCars, err = s.Catalog.CountAvailableGarage(ctx); err != nil {
		return out, domain.InternalError{Err: err}
	}
	if out.ActiveVouchers, err = s.Vouchers.CountActive(ctx); err != nil {
		return out, domain.InternalError{Err: err}
	}
	if out.NewsletterSubs, err = s.Newsletter.Count(ctx); err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}
