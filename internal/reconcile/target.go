package reconcile

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Kind selects which billable table a target lives in.
type Kind string

const (
	KindWork    Kind = "work"
	KindService Kind = "service"
)

// Target identifies one work or service record.
type Target struct {
	Kind Kind         `json:"kind"`
	ID   snowflake.ID `json:"id"`
}

func WorkTarget(id snowflake.ID) Target    { return Target{Kind: KindWork, ID: id} }
func ServiceTarget(id snowflake.ID) Target { return Target{Kind: KindService, ID: id} }

// tables returns (record table, join table, join column) for the kind.
func (k Kind) tables() (string, string, string, error) {
	switch k {
	case KindWork:
		return "works", "work_payments", "work_id", nil
	case KindService:
		return "services", "service_payments", "service_id", nil
	default:
		return "", "", "", fmt.Errorf("unknown target kind %q", k)
	}
}
