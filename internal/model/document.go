package model

import "fmt"

// DocumentKind names the presentation label family of a unit.
type DocumentKind string

const (
	DocumentKindImage DocumentKind = "Image"
	DocumentKindSlide DocumentKind = "Slide"
)

// documentTemplate wraps extracted text for presentation to the model.
const documentTemplate = "<strong>Content from %s:</strong><br><p>%s</p>"

// DocumentUnit is the normalized text of one image or one PDF page.
type DocumentUnit struct {
	Role    Role   `json:"role"`
	Label   string `json:"label"`
	Content string `json:"content"`
}

// NewDocumentUnit labels text as "{kind} {number}" and wraps it in the
// presentation template.
func NewDocumentUnit(kind DocumentKind, number int, text string) DocumentUnit {
	label := fmt.Sprintf("%s %d", kind, number)
	return DocumentUnit{
		Role:    RoleUser,
		Label:   label,
		Content: fmt.Sprintf(documentTemplate, label, text),
	}
}

// AsMessage returns the unit as it is sent to the completion service.
func (u DocumentUnit) AsMessage() Message {
	return Message{Role: u.Role, Content: u.Content}
}
