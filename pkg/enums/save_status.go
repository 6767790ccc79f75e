package enums

// SaveStatus mirrors the product editor's autosave indicator.
type SaveStatus string

const (
	SaveStatusSaved   SaveStatus = "saved"
	SaveStatusSaving  SaveStatus = "saving"
	SaveStatusUnsaved SaveStatus = "unsaved"
)

func (s SaveStatus) String() string {
	return string(s)
}
