package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"khanza/internal/domain"
	"khanza/internal/domain/models"
	"khanza/internal/repositories"
	"khanza/internal/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const defaultSiteName = "Khanza Repaint"

// DocsService renders invoice and report documents.
type DocsService struct {
	Invoices InvoiceService
	Reports  ReportsService
	Settings repositories.SettingsRepository
	Now      func() time.Time
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s DocsService) siteName(ctx context.Context) string {
	v, ok, err := s.Settings.Get(ctx, repositories.KeySiteName)
	if err != nil || !ok {
		return defaultSiteName
	}
	return utils.Fallback(v, defaultSiteName)
}

var errNothingToExport = domain.NotFoundError{Resource: "report", Msg: "Tidak ada data reservasi selesai untuk diekspor."}

func (s DocsService) InvoicePDF(ctx context.Context, id int64) ([]byte, string, error) {
	inv, err := s.Invoices.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "docs", "invoice_pdf", "generate invoice", zap.Int64("invoice_id", id))
	return buildInvoicePDF(inv, s.siteName(ctx), s.now())
}

func (s DocsService) ReportPDF(ctx context.Context, period string) ([]byte, string, error) {
	exp, err := s.Reports.Export(ctx, period)
	if err != nil {
		return nil, "", err
	}
	if len(exp.Rows) == 0 {
		return nil, "", errNothingToExport
	}
	return buildReportPDF(exp, s.siteName(ctx), s.now())
}

func (s DocsService) ReportXLSX(ctx context.Context, period string) ([]byte, string, error) {
	exp, err := s.Reports.Export(ctx, period)
	if err != nil {
		return nil, "", err
	}
	if len(exp.Rows) == 0 {
		return nil, "", errNothingToExport
	}
	return buildReportXLSX(exp, s.now())
}

func invoiceNumber(inv models.InvoiceView) string {
	return fmt.Sprintf("INV-%05d", inv.ID)
}

func buildInvoicePDF(inv models.InvoiceView, siteName string, now time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(220, 38, 38)
	pdf.Cell(0, 10, siteName)
	pdf.Ln(10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "INVOICE")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	head := []string{
		"No Invoice  : " + invoiceNumber(inv),
		"Tanggal     : " + utils.FormatScheduleID(inv.CreatedAt),
		"Dicetak     : " + utils.FormatScheduleID(now),
	}
	for _, l := range head {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Ditagihkan kepada:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	schedule := "-"
	if inv.ScheduledAt != nil {
		schedule = utils.FormatScheduleID(*inv.ScheduledAt)
	}
	client := []string{
		fmt.Sprintf("Nama       : %s", utils.Fallback(inv.ClientName, "-")),
		fmt.Sprintf("Kontak     : %s | %s", utils.Fallback(inv.ClientEmail, "-"), utils.Fallback(inv.ClientPhone, "-")),
		fmt.Sprintf("Kendaraan  : %s", utils.Fallback(inv.VehicleInfo, "-")),
		fmt.Sprintf("Layanan    : %s", utils.Fallback(inv.ServiceTitle, "-")),
		fmt.Sprintf("Jadwal     : %s", schedule),
		fmt.Sprintf("Booking    : #%d", inv.BookingID),
	}
	for _, l := range client {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(220, 38, 38)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(12, 8, "No", "1", 0, "C", true, 0, "")
	pdf.CellFormat(118, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, "Harga", "1", 1, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 11)
	for i, it := range inv.Items {
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(118, 7, it.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, utils.FormatRupiah(it.Price), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	line := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(130, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(60, 7, value, "", 1, "R", false, 0, "")
	}
	line("Subtotal", utils.FormatRupiah(inv.Subtotal), false)
	if inv.DiscountPercent > 0 {
		label := fmt.Sprintf("Diskon %d%%", inv.DiscountPercent)
		if inv.VoucherCode != nil {
			label += " (" + *inv.VoucherCode + ")"
		}
		line(label, "-"+utils.FormatRupiah(inv.Subtotal-inv.Total), false)
	}
	line("Total", utils.FormatRupiah(inv.Total), true)
	if domain.PaymentStatus(inv.PaymentStatus) == domain.PaymentDP {
		line("DP Dibayar", utils.FormatRupiah(inv.DPAmount), false)
		line("Sisa Pembayaran", utils.FormatRupiah(inv.RemainingAmount), true)
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	status := "LUNAS"
	if domain.PaymentStatus(inv.PaymentStatus) == domain.PaymentDP {
		status = "DP (BELUM LUNAS)"
	}
	pdf.Cell(0, 8, "Status Pembayaran: "+status)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Terima kasih telah mempercayakan kendaraan Anda kepada "+siteName+".", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s_%s.pdf", invoiceNumber(inv), utils.SafeFilenamePart(inv.ClientName))
	return buf.Bytes(), filename, nil
}

func buildReportPDF(exp models.ReportExport, siteName string, now time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Laporan Reservasi", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(220, 38, 38)
	pdf.Cell(0, 10, siteName)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(100, 100, 100)
	pdf.Cell(0, 6, "Laporan Rekapitulasi Reservasi Selesai")
	pdf.Ln(6)
	pdf.Cell(0, 6, "Dicetak pada: "+utils.FormatScheduleID(now))
	pdf.Ln(10)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Ringkasan %s (total %d)", exp.Summary.Title, exp.Summary.Total))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	parts := make([]string, 0, len(exp.Summary.Buckets))
	for _, b := range exp.Summary.Buckets {
		parts = append(parts, fmt.Sprintf("%s: %d", b.Label, b.Count))
	}
	pdf.MultiCell(0, 5, strings.Join(parts, "   "), "", "", false)
	pdf.Ln(4)

	cols := []struct {
		title string
		w     float64
	}{{"ID", 15}, {"Klien", 40}, {"Kendaraan", 45}, {"Layanan", 50}, {"Waktu Selesai", 40}}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(220, 38, 38)
	pdf.SetTextColor(255, 255, 255)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(c.w, 8, c.title, "1", ln, "L", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range exp.Rows {
		vals := []string{
			fmt.Sprintf("%d", r.ID),
			utils.Fallback(r.Name, "-"),
			utils.Fallback(r.VehicleInfo, "-"),
			utils.Fallback(r.ServiceTitle, "-"),
			r.ScheduledAt.Format("02/01/2006 15:04"),
		}
		for i, v := range vals {
			ln := 0
			if i == len(vals)-1 {
				ln = 1
			}
			pdf.CellFormat(cols[i].w, 7, v, "1", ln, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("Laporan_KhanzaRepaint_%s.pdf", now.Format("02012006")), nil
}

const reportSheet = "Reservasi Selesai"

func buildReportXLSX(exp models.ReportExport, now time.Time) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, "", err
	}
	header := []any{"ID Reservasi", "Klien", "Kontak", "Kendaraan", "Layanan", "Tanggal Selesai"}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return nil, "", err
	}
	for i, r := range exp.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", err
		}
		row := []any{
			fmt.Sprintf("#%d", r.ID),
			utils.Fallback(r.Name, "-"),
			fmt.Sprintf("%s | %s", utils.Fallback(r.Email, "-"), utils.Fallback(r.Phone, "-")),
			r.VehicleInfo,
			utils.Fallback(r.ServiceTitle, "Layanan"),
			utils.FormatScheduleID(r.ScheduledAt),
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, "", err
		}
	}
	widths := []float64{15, 25, 35, 25, 30, 25}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetColWidth(reportSheet, col, col, w); err != nil {
			return nil, "", err
		}
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DC2626"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", err
	}
	if err := f.SetCellStyle(reportSheet, "A1", "F1", style); err != nil {
		return nil, "", err
	}

	const summarySheet = "Ringkasan"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, "", err
	}
	if err := f.SetSheetRow(summarySheet, "A1", &[]any{exp.Summary.Title, "Jumlah"}); err != nil {
		return nil, "", err
	}
	for i, b := range exp.Summary.Buckets {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(summarySheet, cell, &[]any{b.Label, b.Count}); err != nil {
			return nil, "", err
		}
	}
	totalCell, _ := excelize.CoordinatesToCellName(1, len(exp.Summary.Buckets)+2)
	if err := f.SetSheetRow(summarySheet, totalCell, &[]any{"Total", exp.Summary.Total}); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("Rekap_KhanzaRepaint_%s.xlsx", now.Format("02012006")), nil
}
