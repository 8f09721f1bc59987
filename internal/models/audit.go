package models

// AuditDetails identifies the audited company and period.
type AuditDetails struct {
	CompanyName string `json:"companyName"`
	NIT         string `json:"nit"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	AuditorName string `json:"auditorName,omitempty"`
}

// FileMetadata is the serializable description of an uploaded binary file.
type FileMetadata struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
	LastModified int64  `json:"lastModified"`
}

// AuditFile is one registered upload. Content carries the base64 payload in
// exported snapshots; the backend store keeps payloads out of band and
// re-attaches them by id on load.
type AuditFile struct {
	ID       string       `json:"id"`
	Metadata FileMetadata `json:"file"`
	Content  string       `json:"content,omitempty"`
	Password string       `json:"password,omitempty"`
}

// FileCategory names the six audit-file buckets.
type FileCategory string

const (
	CategoryDeclaraciones     FileCategory = "declaraciones"
	CategoryBanrep            FileCategory = "banrep"
	CategoryExtractos         FileCategory = "extractos"
	CategorySoportesAduaneros FileCategory = "soportesAduaneros"
	CategorySoportesBancarios FileCategory = "soportesBancarios"
	CategoryXMLs              FileCategory = "xmls"
)

// Categories lists every bucket in display order.
var Categories = []FileCategory{
	CategoryDeclaraciones,
	CategoryBanrep,
	CategoryExtractos,
	CategorySoportesAduaneros,
	CategorySoportesBancarios,
	CategoryXMLs,
}

// AuditFileRegistry holds the uploaded files per category.
type AuditFileRegistry struct {
	Declaraciones     []AuditFile `json:"declaraciones"`
	Banrep            []AuditFile `json:"banrep"`
	Extractos         []AuditFile `json:"extractos"`
	SoportesAduaneros []AuditFile `json:"soportesAduaneros"`
	SoportesBancarios []AuditFile `json:"soportesBancarios"`
	XMLs              []AuditFile `json:"xmls"`
}

// Bucket returns a pointer to the slice for the given category, or nil for
// an unknown category.
func (r *AuditFileRegistry) Bucket(cat FileCategory) *[]AuditFile {
	switch cat {
	case CategoryDeclaraciones:
		return &r.Declaraciones
	case CategoryBanrep:
		return &r.Banrep
	case CategoryExtractos:
		return &r.Extractos
	case CategorySoportesAduaneros:
		return &r.SoportesAduaneros
	case CategorySoportesBancarios:
		return &r.SoportesBancarios
	case CategoryXMLs:
		return &r.XMLs
	}
	return nil
}

// FindByName returns the first file with the given name in the category.
func (r *AuditFileRegistry) FindByName(cat FileCategory, name string) (AuditFile, bool) {
	bucket := r.Bucket(cat)
	if bucket == nil {
		return AuditFile{}, false
	}
	for _, f := range *bucket {
		if f.Metadata.Name == name {
			return f, true
		}
	}
	return AuditFile{}, false
}

// Remove deletes the file with the given id from the category and reports
// whether anything was removed.
func (r *AuditFileRegistry) Remove(cat FileCategory, id string) bool {
	bucket := r.Bucket(cat)
	if bucket == nil {
		return false
	}
	for i, f := range *bucket {
		if f.ID == id {
			next := append([]AuditFile{}, (*bucket)[:i]...)
			*bucket = append(next, (*bucket)[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the registry.
func (r AuditFileRegistry) Clone() AuditFileRegistry {
	r.Declaraciones = append([]AuditFile(nil), r.Declaraciones...)
	r.Banrep = append([]AuditFile(nil), r.Banrep...)
	r.Extractos = append([]AuditFile(nil), r.Extractos...)
	r.SoportesAduaneros = append([]AuditFile(nil), r.SoportesAduaneros...)
	r.SoportesBancarios = append([]AuditFile(nil), r.SoportesBancarios...)
	r.XMLs = append([]AuditFile(nil), r.XMLs...)
	return r
}
