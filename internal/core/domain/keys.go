package domain

const (
	// Fields the inventory API uses in object and error payloads.
	KeyID             = "id"
	KeyName           = "name"
	KeySlug           = "slug"
	KeyDetail         = "detail"
	KeyNonFieldErrors = "non_field_errors"

	// Pagination envelope of list endpoints.
	KeyCount   = "count"
	KeyNext    = "next"
	KeyResults = "results"

	// NotFoundDetail is the detail text the API returns for a missing object.
	NotFoundDetail = "Not found."

	// NothingChanged is the result reported when no remote call was needed.
	NothingChanged = "Nothing changed."

	// FactName is the key under which read-only lookups are exposed.
	FactName = "netbox_result"
)
