package receipt

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
	coreport "github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
)

// PDFRenderer renders contribution receipts as PDF documents
type PDFRenderer struct {
	churchName   string
	timeProvider coreport.TimeProvider
}

// NewPDFRenderer creates a new PDF receipt renderer
func NewPDFRenderer(churchName string, timeProvider coreport.TimeProvider) *PDFRenderer {
	return &PDFRenderer{
		churchName:   churchName,
		timeProvider: timeProvider,
	}
}

// Render produces the receipt document for a transaction
func (r *PDFRenderer) Render(ctx context.Context, txn *entity.Transaction) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetTitle(fmt.Sprintf("Receipt %d", txn.ID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, r.churchName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, "Contribution Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetDrawColor(120, 120, 120)
	pdf.Line(15, pdf.GetY(), 133, pdf.GetY())
	pdf.Ln(6)

	r.row(pdf, "Receipt No.", fmt.Sprintf("%d", txn.ID))
	r.row(pdf, "Member", txn.MemberName)
	if txn.PhoneNumber != "" {
		r.row(pdf, "Phone", txn.PhoneNumber)
	}
	r.row(pdf, "Category", txn.Category.Display())
	r.row(pdf, "Payment Type", txn.PaymentType.Display())
	r.row(pdf, "Amount", "KES "+txn.Amount)
	r.row(pdf, "Date", txn.CreatedAt.Format("02 Jan 2006 15:04"))
	if txn.MpesaRef != "" {
		r.row(pdf, "M-Pesa Ref", txn.MpesaRef)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Thank you for your contribution.", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Generated on "+r.timeProvider.Now().Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrReceiptRender, err.Error())
	}

	return buf.Bytes(), nil
}

func (r *PDFRenderer) row(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(40, 7, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}
