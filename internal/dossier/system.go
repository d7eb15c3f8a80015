package dossier

import "context"

// System defines the public contract for dossier operations.
type System interface {
	Handler() *Handler

	Build(ctx context.Context, email string) (*Dossier, error)

	// ExportExcel renders the dossier as a spreadsheet and returns the file
	// contents plus a suggested filename.
	ExportExcel(ctx context.Context, email string) ([]byte, string, error)
}
