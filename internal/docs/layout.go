// Package docs renders customer-facing PDF documents (booking confirmation,
// invoice) from a booking snapshot plus staff-edited overrides. Builders
// produce a declarative Layout; only the renderer touches the PDF backend, so
// document content stays pure and testable.
package docs

// Layout is an ordered sequence of blocks making up one document.
type Layout struct {
	Title    string
	Filename string
	Blocks   []Block
}

type Block interface {
	block()
}

// HeaderBand is the branded color band at the top of the page.
type HeaderBand struct {
	Company   string
	Subtitle  string
	DateStamp string
}

// ContactBlock is a short address/contact listing under a small heading.
type ContactBlock struct {
	Heading string
	Lines   []string
}

// SectionTitle starts a named section.
type SectionTitle struct {
	Text string
}

// FieldRows is a run of label/value rows; Boxed draws them over a shaded
// rounded panel.
type FieldRows struct {
	Rows  []FieldRow
	Boxed bool
}

type FieldRow struct {
	Label string
	Value string
}

// TotalRow is the highlighted amount band.
type TotalRow struct {
	Label string
	Value string
}

// TextBlock is free-flowing wrapped text with an optional bold title.
type TextBlock struct {
	Title string
	Text  string
}

// Divider is a horizontal rule.
type Divider struct{}

// Footer renders centered closing lines at the end of the document.
type Footer struct {
	Lines []string
}

func (HeaderBand) block()   {}
func (ContactBlock) block() {}
func (SectionTitle) block() {}
func (FieldRows) block()    {}
func (TotalRow) block()     {}
func (TextBlock) block()    {}
func (Divider) block()      {}
func (Footer) block()       {}
