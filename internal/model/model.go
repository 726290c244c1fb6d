package model

// Mode is the assignment mode of a zone.
type Mode string

const (
	ModeConstantTemp   Mode = "constantTemp"
	ModeGlobalSchedule Mode = "globalSchedule"
	ModeLocalSchedule  Mode = "localSchedule"
	ModeTimeLimit      Mode = "timeLimit"
)

// ZoneStateOff is the zone state reported for disabled zones.
const ZoneStateOff = "zoneOff"

// EmptyIntervalMarker is the start/stop value the controller uses for unused interval slots.
const EmptyIntervalMarker = 6100

// Module is the full state of one controller as returned by a single fetch.
// A fetched Module is shared between readers and must be treated as immutable.
type Module struct {
	Zones           Zones   `json:"zones"`
	Tiles           []Tile  `json:"tiles" validate:"dive"`
	TilesOrder      any     `json:"tilesOrder"`
	TilesLastUpdate *string `json:"tilesLastUpdate"`
}

// Zones groups the zone list with the module's global schedules.
type Zones struct {
	TransactionTime      string               `json:"transaction_time"`
	Elements             []Zone               `json:"elements" validate:"dive"`
	GlobalSchedules      GlobalSchedules      `json:"globalSchedules"`
	ControllerParameters ControllerParameters `json:"controllerParameters"`
}

// Zone is one room or area of a module.
type Zone struct {
	Zone               ZoneAttributes  `json:"zone"`
	Description        ZoneDescription `json:"description"`
	Mode               ZoneMode        `json:"mode"`
	Schedule           LocalSchedule   `json:"schedule"`
	Actuators          []any           `json:"actuators"`
	Underfloor         map[string]any  `json:"underfloor"`
	WindowsSensors     []any           `json:"windowsSensors"`
	AdditionalContacts []any           `json:"additionalContacts"`
}

// ZoneAttributes holds sensor readings and state. Temperatures are in tenths of a degree.
type ZoneAttributes struct {
	ID                 int       `json:"id"`
	ParentID           int       `json:"parentId"`
	Time               string    `json:"time"`
	DuringChange       bool      `json:"duringChange"`
	Index              int       `json:"index"`
	CurrentTemperature *int      `json:"currentTemperature"`
	SetTemperature     int       `json:"setTemperature"`
	Flags              ZoneFlags `json:"flags"`
	ZoneState          string    `json:"zoneState" validate:"oneof=zoneOff noAlarm zoneUnregistered sensorDamaged noCommunication"`
	SignalStrength     *int      `json:"signalStrength"`
	BatteryLevel       *int      `json:"batteryLevel"`
	ActuatorsOpen      int       `json:"actuatorsOpen"`
	Humidity           int       `json:"humidity"`
	Visibility         bool      `json:"visibility"`
}

type ZoneFlags struct {
	RelayState       string `json:"relayState"`
	MinOneWindowOpen bool   `json:"minOneWindowOpen"`
	Algorithm        string `json:"algorithm" validate:"oneof=heating cooling"`
	FloorSensor      int    `json:"floorSensor"`
	HumidityAlgorytm int    `json:"humidityAlgorytm"`
	ZoneExcluded     int    `json:"zoneExcluded"`
}

type ZoneDescription struct {
	ID           int    `json:"id"`
	ParentID     int    `json:"parentId"`
	Name         string `json:"name" validate:"required"`
	StyleID      int    `json:"styleId"`
	StyleIcon    string `json:"styleIcon"`
	DuringChange bool   `json:"duringChange"`
}

// ZoneMode is the zone's mode record. ID is the mode record identifier used when
// addressing mutations, distinct from the zone identifier.
type ZoneMode struct {
	ID             int  `json:"id"`
	ParentID       int  `json:"parentId"`
	Mode           Mode `json:"mode" validate:"oneof=constantTemp globalSchedule localSchedule timeLimit"`
	ConstTempTime  int  `json:"constTempTime"`
	SetTemperature int  `json:"setTemperature"`
	ScheduleIndex  int  `json:"scheduleIndex"`
}

// Interval is one heating window. Start and Stop are minutes from midnight.
type Interval struct {
	Start int `json:"start"`
	Stop  int `json:"stop"`
	Temp  int `json:"temp"`
}

// Empty reports whether the interval is an unused slot.
func (i Interval) Empty() bool {
	return i.Start == EmptyIntervalMarker
}

// LocalSchedule is the per-zone schedule. It is read-only here.
type LocalSchedule struct {
	ID            int        `json:"id"`
	ParentID      int        `json:"parentId"`
	Index         int        `json:"index"`
	P0Days        []string   `json:"p0Days"`
	P0Intervals   []Interval `json:"p0Intervals" validate:"dive"`
	P0SetbackTemp int        `json:"p0SetbackTemp"`
	P1Days        []string   `json:"p1Days"`
	P1Intervals   []Interval `json:"p1Intervals" validate:"dive"`
	P1SetbackTemp int        `json:"p1SetbackTemp"`
}

// GlobalSchedule is a named schedule shared by zones. Zones reference it by Index,
// not by ID.
type GlobalSchedule struct {
	ID            int        `json:"id"`
	ParentID      int        `json:"parentId"`
	Index         int        `json:"index"`
	Name          string     `json:"name" validate:"required"`
	P0Days        []string   `json:"p0Days"`
	P0SetbackTemp int        `json:"p0SetbackTemp"`
	P0Intervals   []Interval `json:"p0Intervals" validate:"dive"`
	P1Days        []string   `json:"p1Days"`
	P1SetbackTemp int        `json:"p1SetbackTemp"`
	P1Intervals   []Interval `json:"p1Intervals" validate:"dive"`
}

type GlobalSchedules struct {
	Time         string           `json:"time"`
	DuringChange bool             `json:"duringChange"`
	Elements     []GlobalSchedule `json:"elements" validate:"dive"`
}

type ControllerMode struct {
	ID       int `json:"id"`
	ParentID int `json:"parentId"`
	Type     int `json:"type"`
	TxtID    int `json:"txtId"`
	IconID   int `json:"iconId"`
	Value    int `json:"value"`
	MenuID   int `json:"menuId"`
}

type ControllerParameters struct {
	ControllerMode        ControllerMode `json:"controllerMode"`
	GlobalSchedulesNumber map[string]any `json:"globalSchedulesNumber"`
}

// Tile is display data for the vendor app. Nothing here reads it.
type Tile struct {
	ID         int        `json:"id"`
	ParentID   int        `json:"parentId"`
	Type       int        `json:"type"`
	MenuID     int        `json:"menuId"`
	OrderID    any        `json:"orderId"`
	Visibility bool       `json:"visibility"`
	Params     TileParams `json:"params"`
}

type TileParams struct {
	Description      *string `json:"description"`
	WorkingStatus    *bool   `json:"workingStatus"`
	TxtID            *int    `json:"txtId"`
	IconID           *int    `json:"iconId"`
	Version          *string `json:"version"`
	CompanyID        *int    `json:"companyId"`
	ControllerName   *string `json:"controllerName"`
	MainControllerID *int    `json:"mainControllerId"`
}

// AccountModule is the summary of a module listed for an account.
type AccountModule struct {
	ID                     int     `json:"id"`
	Default                bool    `json:"default"`
	Name                   string  `json:"name"`
	Email                  string  `json:"email"`
	Type                   string  `json:"type"`
	ControllerStatus       *string `json:"controllerStatus"`
	ModuleStatus           *string `json:"moduleStatus"`
	AdditionalInformation  *string `json:"additionalInformation"`
	PhoneNumber            any     `json:"phoneNumber"`
	ZipCode                *string `json:"zipCode"`
	Tag                    *string `json:"tag"`
	Country                *string `json:"country"`
	GmtID                  *int    `json:"gmtId"`
	GmtTime                *string `json:"gmtTime"`
	PostcodePolicyAccepted bool    `json:"postcodePolicyAccepted"`
	Style                  *string `json:"style"`
	Version                *string `json:"version"`
	Company                *string `json:"company"`
	UDID                   string  `json:"udid" validate:"required"`
}

// Authentication is the response to a login request.
type Authentication struct {
	UserID int    `json:"user_id" validate:"required"`
	Token  string `json:"token" validate:"required"`
}
