package entity

import (
	"fmt"
	"strings"
)

// Article fabric types
const (
	FabricStitch   = "stitch"
	FabricUnstitch = "unstitch"
)

// Article measurement types
const (
	MeasurementMeter = "meter"
	MeasurementPiece = "piece"
)

// Article status
const (
	ArticleStatusRaw          = "raw"
	ArticleStatusUnderProcess = "underprocess"
	ArticleStatusCompleted    = "completed"
	ArticleStatusFinished     = "finished"
)

// User roles carried in JWT claims
const (
	RoleAdmin       = "admin"
	RoleDesigner    = "designer"
	RoleAccountant  = "accountant"
	RoleStoreKeeper = "store keeper"
	RoleCashier     = "cashier"
)

// Planning route types
const (
	RouteTypeDyeing     = "dyeing"
	RouteTypePrinting   = "printing"
	RouteTypeEmbroidery = "embroidery"
)

// Article planning status
const (
	PlanningStatusPending    = "Pending"
	PlanningStatusInProgress = "In Progress"
	PlanningStatusCompleted  = "Completed"
)

// Order slip
const (
	OrderSlipIssued   = "Issued"
	OrderSlipReceived = "Received"
)

// Category seasons
const (
	SeasonSummer = "Summer"
	SeasonWinter = "Winter"
	SeasonSpring = "Spring"
	SeasonAutumn = "Autumn"
)

// EnumKind names a closed vocabulary.
type EnumKind string

const (
	EnumFabricType      EnumKind = "fabric_type"
	EnumMeasurementType EnumKind = "measurement_type"
	EnumArticleStatus   EnumKind = "article_status"
	EnumRole            EnumKind = "role"
	EnumRouteType       EnumKind = "planning_route_type"
	EnumPlanningStatus  EnumKind = "planning_status"
	EnumOrderSlip       EnumKind = "order_slip"
	EnumSeason          EnumKind = "category_season"
)

var enumRegistry = map[EnumKind][]string{
	EnumFabricType:      {FabricStitch, FabricUnstitch},
	EnumMeasurementType: {MeasurementMeter, MeasurementPiece},
	EnumArticleStatus:   {ArticleStatusRaw, ArticleStatusUnderProcess, ArticleStatusCompleted, ArticleStatusFinished},
	EnumRole:            {RoleAdmin, RoleDesigner, RoleAccountant, RoleStoreKeeper, RoleCashier},
	EnumRouteType:       {RouteTypeDyeing, RouteTypePrinting, RouteTypeEmbroidery},
	EnumPlanningStatus:  {PlanningStatusPending, PlanningStatusInProgress, PlanningStatusCompleted},
	EnumOrderSlip:       {OrderSlipIssued, OrderSlipReceived},
	EnumSeason:          {SeasonSummer, SeasonWinter, SeasonSpring, SeasonAutumn},
}

// Values returns the allowed values of kind in declaration order.
func Values(kind EnumKind) []string {
	vals := enumRegistry[kind]
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// IsValid reports whether value belongs to kind.
func IsValid(kind EnumKind, value string) bool {
	for _, v := range enumRegistry[kind] {
		if v == value {
			return true
		}
	}
	return false
}

// EnumError builds the message used when a field carries a value outside its vocabulary.
func EnumError(field, value string, kind EnumKind) string {
	return fmt.Sprintf("%s '%s' is invalid. Allowed values: %s", field, value, strings.Join(enumRegistry[kind], ", "))
}

// IsTerminalArticleStatus reports whether an article has left the processing pipeline.
func IsTerminalArticleStatus(status string) bool {
	return status == ArticleStatusCompleted || status == ArticleStatusFinished
}
