package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// User roles.
const (
	RoleResident  = "RESIDENT"
	RoleCollector = "COLLECTOR"
)

// Listing lifecycle states.
const (
	ListingAvailable = "AVAILABLE"
	ListingReserved  = "RESERVED"
	ListingSold      = "SOLD"
	ListingCancelled = "CANCELLED"
)

// Collector availability states.
const (
	CollectorAvailable = "AVAILABLE"
	CollectorBusy      = "BUSY"
	CollectorOffline   = "OFFLINE"
)

// Dump report states.
const (
	ReportPending  = "PENDING"
	ReportAccepted = "ACCEPTED"
	ReportRejected = "REJECTED"
)

// Dump report severity levels.
const (
	SeveritySmall     = "SMALL"
	SeverityMedium    = "MEDIUM"
	SeverityRisking   = "RISKING"
	SeverityDangerous = "DANGEROUS"
)

// Quantity buckets for listings and collector acceptance.
const (
	QuantitySmall  = "SMALL"
	QuantityMedium = "MEDIUM"
	QuantityLarge  = "LARGE"
)

// WasteTypes is the canonical waste-type set. All ingestion paths normalize
// into this set; the DB never stores any other spelling.
var WasteTypes = []string{"PLASTIC", "ORGANIC", "ELECTRONIC", "HAZARDOUS", "GENERAL"}

// wasteTypeAliases maps legacy lower-case schema values onto the canonical set.
var wasteTypeAliases = map[string]string{
	"RECYCLABLE": "PLASTIC",
}

// ParseWasteType normalizes a raw waste-type value (any casing, legacy aliases
// included) into the canonical set. Unknown values return an error.
func ParseWasteType(raw string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if mapped, ok := wasteTypeAliases[v]; ok {
		v = mapped
	}
	for _, wt := range WasteTypes {
		if wt == v {
			return wt, nil
		}
	}
	return "", fmt.Errorf("unknown waste type %q", raw)
}

// ParseWasteTypes normalizes a slice of raw waste-type values.
func ParseWasteTypes(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		wt, err := ParseWasteType(r)
		if err != nil {
			return nil, err
		}
		out = append(out, wt)
	}
	return out, nil
}

// ParseQuantity normalizes a quantity bucket (case-insensitive).
func ParseQuantity(raw string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch v {
	case QuantitySmall, QuantityMedium, QuantityLarge:
		return v, nil
	}
	return "", fmt.Errorf("unknown quantity %q", raw)
}

// ParseSeverity normalizes a report severity level.
func ParseSeverity(raw string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch v {
	case SeveritySmall, SeverityMedium, SeverityRisking, SeverityDangerous:
		return v, nil
	}
	return "", fmt.Errorf("unknown severity %q", raw)
}

// ParseListingStatus validates a listing status value.
func ParseListingStatus(raw string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch v {
	case ListingAvailable, ListingReserved, ListingSold, ListingCancelled:
		return v, nil
	}
	return "", fmt.Errorf("unknown listing status %q", raw)
}

// ParseCollectorStatus validates a collector availability value.
func ParseCollectorStatus(raw string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch v {
	case CollectorAvailable, CollectorBusy, CollectorOffline:
		return v, nil
	}
	return "", fmt.Errorf("unknown collector status %q", raw)
}

// ParseReportStatus validates a dump-report status value.
func ParseReportStatus(raw string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch v {
	case ReportPending, ReportAccepted, ReportRejected:
		return v, nil
	}
	return "", fmt.Errorf("unknown report status %q", raw)
}

// ParseRole validates a user role.
func ParseRole(raw string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch v {
	case RoleResident, RoleCollector:
		return v, nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

// StringList stores a string set as a JSON text column but marshals to the API
// as a plain array. Keeps set-valued columns portable across Postgres and the
// sqlite test DB.
type StringList []string

// Scan implements sql.Scanner for reading from DB.
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// Value implements driver.Valuer for writing to DB.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Contains reports whether v is a member of the list.
func (s StringList) Contains(v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
