package controller

import (
	"fmt"
	"net/http"

	"github.com/bassista/go_touchline/internal/logger"
	"github.com/bassista/go_touchline/internal/touchline"
	"github.com/gin-gonic/gin"
)

type zoneURI struct {
	Zone int `uri:"zone" binding:"min=0"`
}

type zonesQuery struct {
	IncludeOff bool   `form:"include_off"`
	Refresh    bool   `form:"refresh"`
	Name       string `form:"name"`
}

// TemperatureRequest switches a zone to a constant target in degrees Celsius.
type TemperatureRequest struct {
	Temperature *float64 `json:"temperature" binding:"required"`
}

// ScheduleRequest moves a zone onto a global schedule.
type ScheduleRequest struct {
	ScheduleID *int `json:"scheduleId" binding:"required,min=0"`
	AllowStale bool `json:"allowStale"`
}

// ZoneController handles zone reads and mutations.
type ZoneController struct {
	account AccountService
}

func NewZoneController(account AccountService) *ZoneController {
	return &ZoneController{account: account}
}

// AllZones handles GET /api/modules/:module/zones. A name filter returns at most one zone.
func (zc *ZoneController) AllZones(c *gin.Context) {
	var q zonesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "zone-controller", err)
		return
	}
	m, ok := resolveModule(c, zc.account, "zone-controller")
	if !ok {
		return
	}

	opts := readOptions(q.Refresh)
	if q.Name != "" {
		z, found, err := m.ZoneByName(c.Request.Context(), q.Name, opts...)
		if err != nil {
			respondError(c, "zone-controller", err)
			return
		}
		out := []ZoneResponse{}
		if found {
			out = append(out, newZoneResponse(z))
		}
		c.JSON(http.StatusOK, out)
		return
	}

	if q.IncludeOff {
		opts = append(opts, touchline.IncludeDisabled())
	}
	zones, err := m.Zones(c.Request.Context(), opts...)
	if err != nil {
		respondError(c, "zone-controller", err)
		return
	}
	c.JSON(http.StatusOK, newZoneResponses(zones))
}

// GetZone handles GET /api/modules/:module/zones/:zone.
func (zc *ZoneController) GetZone(c *gin.Context) {
	var uri zoneURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "zone-controller", err)
		return
	}
	var q refreshQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "zone-controller", err)
		return
	}
	m, ok := resolveModule(c, zc.account, "zone-controller")
	if !ok {
		return
	}

	z, found, err := m.Zone(c.Request.Context(), uri.Zone, readOptions(q.Refresh)...)
	if err != nil {
		respondError(c, "zone-controller", err)
		return
	}
	if !found {
		respondError(c, "zone-controller", fmt.Errorf("zone %d: %w", uri.Zone, touchline.ErrZoneNotFound))
		return
	}
	c.JSON(http.StatusOK, newZoneResponse(z))
}

// SetTemperature handles POST /api/modules/:module/zones/:zone/temperature.
func (zc *ZoneController) SetTemperature(c *gin.Context) {
	var uri zoneURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "zone-controller", err)
		return
	}
	var req TemperatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "zone-controller", err)
		return
	}
	m, ok := resolveModule(c, zc.account, "zone-controller")
	if !ok {
		return
	}

	logger.WithComponent("zone-controller").Debugf("set zone %d of %s to %.1f", uri.Zone, m.ID(), *req.Temperature)
	if err := m.SetZoneTemperature(c.Request.Context(), uri.Zone, *req.Temperature); err != nil {
		respondError(c, "zone-controller", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"zoneId":      uri.Zone,
		"temperature": *req.Temperature,
		"message":     "temperature set",
	})
}

// SetSchedule handles POST /api/modules/:module/zones/:zone/schedule.
func (zc *ZoneController) SetSchedule(c *gin.Context) {
	var uri zoneURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "zone-controller", err)
		return
	}
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "zone-controller", err)
		return
	}
	m, ok := resolveModule(c, zc.account, "zone-controller")
	if !ok {
		return
	}

	var opts []touchline.AssignOption
	if req.AllowStale {
		opts = append(opts, touchline.AllowStale())
	}
	logger.WithComponent("zone-controller").Debugf("assign zone %d of %s to schedule %d", uri.Zone, m.ID(), *req.ScheduleID)
	if err := m.AssignZoneSchedule(c.Request.Context(), uri.Zone, *req.ScheduleID, opts...); err != nil {
		respondError(c, "zone-controller", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"zoneId":     uri.Zone,
		"scheduleId": *req.ScheduleID,
		"message":    "schedule assigned",
	})
}

func readOptions(refresh bool) []touchline.ReadOption {
	if refresh {
		return []touchline.ReadOption{touchline.Refresh()}
	}
	return nil
}
