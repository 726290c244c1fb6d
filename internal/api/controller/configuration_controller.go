package controller

import (
	"net/http"

	"github.com/bassista/go_touchline/internal/config"
	"github.com/gin-gonic/gin"
)

// ConfigurationResponse is the non-secret part of the configuration.
type ConfigurationResponse struct {
	BaseURL           string  `json:"baseUrl"`
	CacheValiditySecs int     `json:"cacheValiditySecs"`
	ModuleListTTLSecs float64 `json:"moduleListTtlSecs"`
}

// ConfigurationController handles configuration-related API endpoints.
type ConfigurationController struct {
	config *config.Config
}

func NewConfigurationController(cfg *config.Config) *ConfigurationController {
	return &ConfigurationController{
		config: cfg,
	}
}

// GetConfiguration returns the cache settings and the upstream URL. Credentials are never exposed.
func (cc *ConfigurationController) GetConfiguration(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigurationResponse{
		BaseURL:           cc.config.Remote.BaseURL,
		CacheValiditySecs: cc.config.Cache.ValiditySecs,
		ModuleListTTLSecs: cc.config.Cache.ModuleListTTL.Seconds(),
	})
}
