// Package invoice renders an order into a single-page PDF invoice: issuer
// header, invoice number (the order id) and date, bill-to block, one line
// item, subtotal / tax (fixed 0%) / total, and a payment footer. Pure
// formatting; no business logic lives here.
package invoice

import (
	"bytes"   // Output buffer
	"strconv" // Amount formatting

	"hoststore/internal/domain" // Importing domain models

	"github.com/jung-kurt/gofpdf" // PDF generation
)

// Issuer is the company block printed in the header
type Issuer struct {
	Name    string // Company name
	Address string // Street address line
	Email   string // Support email
	Phone   string // Support phone
}

// DefaultIssuer is used when the caller does not override the header block
var DefaultIssuer = Issuer{
	Name:    "HostStore",
	Address: "Jl. Example No. 123, Jakarta, Indonesia",
	Email:   "support@hoststore.example",
	Phone:   "+62 812-3456-7890",
}

// Data is everything the renderer needs: the order with its resolved user
// and purchased item
type Data struct {
	Order  domain.Order     // The order
	User   domain.User      // Resolved buyer
	Item   domain.StoreItem // Purchased item
	Issuer Issuer           // Header block; zero value falls back to DefaultIssuer
}

// FormatIDR renders a minor-unit amount as "Rp 50.000"
func FormatIDR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-" // Keep the sign out of the grouping loop
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.') // Thousands separator
		}
		out = append(out, d)
	}
	return "Rp " + sign + string(out)
}

// Render produces the invoice PDF bytes
func Render(d Data) ([]byte, error) {
	issuer := d.Issuer
	if issuer.Name == "" {
		issuer = DefaultIssuer // Fall back to the default header block
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	// Header band
	pdf.SetFillColor(99, 102, 241) // Indigo
	pdf.Rect(0, 0, pageW, 45, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(15, 15, "INVOICE")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(15, 23, issuer.Name)
	pdf.Text(15, 28, issuer.Address)
	pdf.Text(15, 33, "Email: "+issuer.Email)
	pdf.Text(15, 38, "Phone: "+issuer.Phone)

	// Invoice details box
	detailsX := pageW - 80
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(detailsX, 15, "INVOICE #")
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(detailsX, 20, d.Order.ID)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(detailsX, 28, "Date: "+d.Order.CreatedAt.Format("02/01/2006"))
	pdf.Text(detailsX, 34, "Status: "+d.Order.Status)

	// Bill-to block
	y := 60.0
	pdf.SetTextColor(99, 102, 241)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Text(15, y, "Bill To:")
	y += 8
	pdf.SetTextColor(107, 114, 128)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(15, y, d.User.Name)
	y += 6
	pdf.Text(15, y, d.User.Email)
	y += 6
	pdf.Text(15, y, "Customer ID: "+d.User.ID)

	// Line item table
	y += 15
	pdf.SetTextColor(99, 102, 241)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Text(15, y, "Order Details:")
	y += 8
	pdf.SetFillColor(249, 250, 251)
	pdf.Rect(15, y-4, pageW-30, 8, "F")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(18, y, "Description")
	pdf.Text(95, y, "Category")
	pdf.Text(125, y, "Qty")
	pdf.Text(140, y, "Price")
	pdf.Text(pageW-45, y, "Total")
	y += 9
	pdf.SetTextColor(107, 114, 128)
	pdf.SetFont("Helvetica", "", 10)
	title := d.Item.Title
	if len(title) > 30 {
		title = title[:30] + "..." // Keep the row on one line
	}
	pdf.Text(18, y, title)
	pdf.Text(95, y, d.Item.Category)
	pdf.Text(125, y, "1")
	pdf.Text(140, y, FormatIDR(d.Order.Amount))
	pdf.Text(pageW-45, y, FormatIDR(d.Order.Amount))

	// Totals block
	y += 18
	pdf.SetFillColor(249, 250, 251)
	pdf.Rect(pageW-95, y-5, 80, 36, "F")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pageW-90, y, "Subtotal:")
	pdf.Text(pageW-40, y, FormatIDR(d.Order.Amount))
	y += 8
	pdf.Text(pageW-90, y, "Tax (0%):")
	pdf.Text(pageW-40, y, FormatIDR(0))
	y += 6
	pdf.SetDrawColor(99, 102, 241)
	pdf.SetLineWidth(0.5)
	pdf.Line(pageW-90, y, pageW-20, y)
	y += 8
	pdf.SetTextColor(99, 102, 241)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(pageW-90, y, "TOTAL:")
	pdf.Text(pageW-40, y, FormatIDR(d.Order.Amount))

	// Payment footer
	y += 20
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(15, y, "Payment Information:")
	y += 7
	pdf.SetTextColor(107, 114, 128)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(15, y, "Payment Method: "+d.Order.PaymentMethod)
	y += 6
	pdf.Text(15, y, "Payment Status: "+d.Order.Status)

	// Footer note
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Text(15, pageH-25, "Thank you for your business!")
	pdf.Text(15, pageH-20, "This is a computer-generated invoice and does not require a signature.")

	// Page border
	pdf.SetDrawColor(99, 102, 241)
	pdf.SetLineWidth(1)
	pdf.Rect(5, 5, pageW-10, pageH-10, "D")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
