package domain

// Role identifies what a column means to the page builder
type Role string

const (
	RoleID            Role = "id"
	RoleTitle         Role = "title"
	RoleDate          Role = "date"
	RoleTags          Role = "tags"
	RoleAttachments   Role = "attachments"
	RoleNotes         Role = "notes"
	RoleCatalogueDate Role = "catalogue_date"
	RolePrimary       Role = "primary"
	RoleThumb         Role = "thumb"
	RoleSeries        Role = "series"
	RoleMedium        Role = "medium"
	RoleDimensions    Role = "dimensions"
	RoleLayout        Role = "layout"
)

// Columns binds the configurable roles to header names
type Columns struct {
	ID          string
	Title       string
	Date        string
	Tags        string
	Attachments string
	Notes       string
}

// DefaultColumns returns the conventional header names
func DefaultColumns() Columns {
	return Columns{
		ID:          "id",
		Title:       "title",
		Date:        "date",
		Tags:        "tags",
		Attachments: "attachments",
		Notes:       "notes",
	}
}

// Header returns the header name bound to role
func (c Columns) Header(role Role) string {
	switch role {
	case RoleID:
		return c.ID
	case RoleTitle:
		return c.Title
	case RoleDate:
		return c.Date
	case RoleTags:
		return c.Tags
	case RoleAttachments:
		return c.Attachments
	case RoleNotes:
		return c.Notes
	default:
		return string(role)
	}
}

// Lookup returns the row's cell for role. A missing column is not an error.
func (c Columns) Lookup(r Row, role Role) (any, bool) {
	v, ok := r.Lookup(c.Header(role))
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Missing returns the mandatory roles whose headers are absent from t
func (c Columns) Missing(t *Table) []Role {
	var missing []Role
	for _, role := range []Role{RoleID, RoleTitle} {
		if !t.HasColumn(c.Header(role)) {
			missing = append(missing, role)
		}
	}
	return missing
}
