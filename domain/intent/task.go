// Package intent defines the closed set of planning tasks a free-text request can be
// mapped to, each with its own typed argument record.
package intent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gosupply/domain/core"
)

// TaskKind identifies a supported scenario
type TaskKind string

const (
	TaskInventoryTransfer     TaskKind = "t1"
	TaskProductionFeasibility TaskKind = "t2"
	TaskDemandForecast        TaskKind = "t3"
	TaskTrimMix               TaskKind = "t4"
	TaskSourcingMitigation    TaskKind = "t5"
	TaskRouteOptimization     TaskKind = "t6"
	TaskEOLBuy                TaskKind = "t7"
)

// AllTasks lists every task in identifier order
var AllTasks = []TaskKind{
	TaskInventoryTransfer,
	TaskProductionFeasibility,
	TaskDemandForecast,
	TaskTrimMix,
	TaskSourcingMitigation,
	TaskRouteOptimization,
	TaskEOLBuy,
}

// ParseTaskKind accepts a task identifier such as "t1" (case-insensitive).
func ParseTaskKind(s string) (TaskKind, error) {
	k := TaskKind(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range AllTasks {
		if t == k {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnsupportedTask, s)
}

// Describe returns a one-line description of the task
func (k TaskKind) Describe() string {
	switch k {
	case TaskInventoryTransfer:
		return "move stock of a product from a supplying location to a requesting location"
	case TaskProductionFeasibility:
		return "check whether a quantity of a product can be produced by a due date"
	case TaskDemandForecast:
		return "forecast demand of a product for a period including marketing campaigns"
	case TaskTrimMix:
		return "rebalance the production mix between the trims of a base model"
	case TaskSourcingMitigation:
		return "find an alternative supplier for a component in shortage"
	case TaskRouteOptimization:
		return "compare the direct lane with a route through a hub"
	case TaskEOLBuy:
		return "size the end-of-life buy for a discontinued component"
	}
	return "unknown task"
}

// Args is the typed argument record of one task. The set of implementations is
// closed: one per TaskKind.
type Args interface {
	Task() TaskKind
	Validate() error
	isArgs()
}

// InventoryTransferArgs (t1)
type InventoryTransferArgs struct {
	ProductID       string `json:"product_id"`
	RequestingLocID string `json:"requesting_loc_id"`
	SupplyingLocID  string `json:"supplying_loc_id"`
}

// ProductionFeasibilityArgs (t2)
type ProductionFeasibilityArgs struct {
	ProductID    string `json:"product_id"`
	RequestedQty int64  `json:"requested_qty"`
	DueDate      string `json:"due_date"` // YYYY-MM-DD
}

// DemandForecastArgs (t3)
type DemandForecastArgs struct {
	ProductID         string   `json:"product_id"`
	TargetPeriod      string   `json:"target_period"` // YYYY-MM
	UpcomingCampaigns []string `json:"upcoming_campaigns"`
}

// TrimMixArgs (t4)
type TrimMixArgs struct {
	BaseModel string `json:"base_model"`
	Period    string `json:"period"`
}

// SourcingMitigationArgs (t5)
type SourcingMitigationArgs struct {
	ComponentID string `json:"component_id"`
	RequiredQty int64  `json:"required_qty"`
}

// RouteOptimizationArgs (t6)
type RouteOptimizationArgs struct {
	SourceLocID string `json:"source_loc_id"`
	HubLocID    string `json:"hub_loc_id"`
	DealerLocID string `json:"dealer_loc_id"`
}

// EOLBuyArgs (t7)
type EOLBuyArgs struct {
	ComponentID string   `json:"component_id"`
	ProductIDs  []string `json:"affected_product_ids"`
}

func (InventoryTransferArgs) Task() TaskKind     { return TaskInventoryTransfer }
func (ProductionFeasibilityArgs) Task() TaskKind { return TaskProductionFeasibility }
func (DemandForecastArgs) Task() TaskKind        { return TaskDemandForecast }
func (TrimMixArgs) Task() TaskKind               { return TaskTrimMix }
func (SourcingMitigationArgs) Task() TaskKind    { return TaskSourcingMitigation }
func (RouteOptimizationArgs) Task() TaskKind     { return TaskRouteOptimization }
func (EOLBuyArgs) Task() TaskKind                { return TaskEOLBuy }

func (InventoryTransferArgs) isArgs()     {}
func (ProductionFeasibilityArgs) isArgs() {}
func (DemandForecastArgs) isArgs()        {}
func (TrimMixArgs) isArgs()               {}
func (SourcingMitigationArgs) isArgs()    {}
func (RouteOptimizationArgs) isArgs()     {}
func (EOLBuyArgs) isArgs()                {}

func (a InventoryTransferArgs) Validate() error {
	if err := requireAll("product_id", a.ProductID, "requesting_loc_id", a.RequestingLocID, "supplying_loc_id", a.SupplyingLocID); err != nil {
		return err
	}
	if a.RequestingLocID == a.SupplyingLocID {
		return core.NewInvalidArgument("supplying_loc_id", "must differ from requesting_loc_id")
	}
	return nil
}

func (a ProductionFeasibilityArgs) Validate() error {
	if err := requireAll("product_id", a.ProductID, "due_date", a.DueDate); err != nil {
		return err
	}
	if a.RequestedQty <= 0 {
		return core.NewInvalidArgument("requested_qty", "must be positive")
	}
	if _, err := time.Parse(time.DateOnly, a.DueDate); err != nil {
		return core.NewInvalidArgument("due_date", "must be YYYY-MM-DD")
	}
	return nil
}

func (a DemandForecastArgs) Validate() error {
	if err := requireAll("product_id", a.ProductID, "target_period", a.TargetPeriod); err != nil {
		return err
	}
	if _, err := time.Parse("2006-01", a.TargetPeriod); err != nil {
		return core.NewInvalidArgument("target_period", "must be YYYY-MM")
	}
	return nil
}

func (a TrimMixArgs) Validate() error {
	if err := requireAll("base_model", a.BaseModel); err != nil {
		return err
	}
	_, err := core.ParsePeriod(a.Period)
	return err
}

func (a SourcingMitigationArgs) Validate() error {
	if err := requireAll("component_id", a.ComponentID); err != nil {
		return err
	}
	if a.RequiredQty <= 0 {
		return core.NewInvalidArgument("required_qty", "must be positive")
	}
	return nil
}

func (a RouteOptimizationArgs) Validate() error {
	return requireAll("source_loc_id", a.SourceLocID, "hub_loc_id", a.HubLocID, "dealer_loc_id", a.DealerLocID)
}

func (a EOLBuyArgs) Validate() error {
	if err := requireAll("component_id", a.ComponentID); err != nil {
		return err
	}
	if len(a.ProductIDs) == 0 {
		return core.NewEmptyInput("affected_product_ids")
	}
	for i, p := range a.ProductIDs {
		if _, err := core.RequireKey(fmt.Sprintf("affected_product_ids[%d]", i), p); err != nil {
			return err
		}
	}
	return nil
}

func requireAll(fieldValues ...string) error {
	for i := 0; i+1 < len(fieldValues); i += 2 {
		if _, err := core.RequireKey(fieldValues[i], fieldValues[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// NewArgs returns an empty argument record for the task
func NewArgs(k TaskKind) (Args, error) {
	switch k {
	case TaskInventoryTransfer:
		return &InventoryTransferArgs{}, nil
	case TaskProductionFeasibility:
		return &ProductionFeasibilityArgs{}, nil
	case TaskDemandForecast:
		return &DemandForecastArgs{}, nil
	case TaskTrimMix:
		return &TrimMixArgs{}, nil
	case TaskSourcingMitigation:
		return &SourcingMitigationArgs{}, nil
	case TaskRouteOptimization:
		return &RouteOptimizationArgs{}, nil
	case TaskEOLBuy:
		return &EOLBuyArgs{}, nil
	}
	return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedTask, string(k))
}

// Decode parses raw JSON into the task's typed record and validates it. Unknown
// fields are rejected.
func Decode(k TaskKind, raw []byte) (Args, error) {
	args, err := NewArgs(k)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(args); err != nil {
		return nil, fmt.Errorf("%w: %s arguments: %v", core.ErrInvalidArgument, k, err)
	}
	// dereference so callers switch on value types
	var out Args
	switch a := args.(type) {
	case *InventoryTransferArgs:
		out = *a
	case *ProductionFeasibilityArgs:
		out = *a
	case *DemandForecastArgs:
		out = *a
	case *TrimMixArgs:
		out = *a
	case *SourcingMitigationArgs:
		out = *a
	case *RouteOptimizationArgs:
		out = *a
	case *EOLBuyArgs:
		out = *a
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
