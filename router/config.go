package router

import (
	"slices"
	"time"
)

// Config holds the transport settings of the router.
type Config struct {
	Timeout         time.Duration `yaml:"timeout"`
	CORS            CORSConfig    `yaml:"cors"`
	HideHeaders     []string      `yaml:"hideHeaders"`
	QuietdownRoutes []string      `yaml:"quietdownRoutes"`
}

// CORSConfig lists the origins, methods and headers answered in CORS
// preflight responses. CORS handling is off while Origins is empty.
type CORSConfig struct {
	Origins          []string `yaml:"origins"`
	Methods          []string `yaml:"methods"`
	Headers          []string `yaml:"headers"`
	AllowCredentials bool     `yaml:"allowCredentials"`
}

func (c Config) clone() Config {
	c.HideHeaders = slices.Clone(c.HideHeaders)
	c.QuietdownRoutes = slices.Clone(c.QuietdownRoutes)
	c.CORS.Origins = slices.Clone(c.CORS.Origins)
	c.CORS.Methods = slices.Clone(c.CORS.Methods)
	c.CORS.Headers = slices.Clone(c.CORS.Headers)
	return c
}
