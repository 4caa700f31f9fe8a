package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/akasprzok/cubeplot/internal/cube"
	"github.com/akasprzok/cubeplot/internal/dashboard"
	"github.com/akasprzok/cubeplot/internal/logger"
	"github.com/akasprzok/cubeplot/internal/prometheus"
	"github.com/rs/zerolog"
)

// Query sources.
const (
	SourceDemo       = "demo"
	SourceCube       = "cube"
	SourcePrometheus = "prometheus"
)

// Globals are the flags shared by every command.
type Globals struct {
	Timeout       time.Duration `help:"Timeout for each query request." default:"60s"`
	LogLevel      string        `help:"Log level." default:"info" enum:"trace,debug,info,warn,error"`
	LogFormat     string        `help:"Log format." default:"console" enum:"console,json"`
	Source        string        `help:"Where card data comes from." default:"demo" enum:"demo,cube,prometheus"`
	CubeURL       string        `help:"Base URL of the Cube API." env:"CUBEPLOT_CUBE_URL" name:"cube-url"`
	CubeToken     string        `help:"Cube API token." env:"CUBEPLOT_CUBE_TOKEN" name:"cube-token"`
	PrometheusURL string        `help:"URL of the Prometheus endpoint." env:"CUBEPLOT_PROMETHEUS_URL" name:"prometheus-url"`
	Dashboard     string        `help:"YAML dashboard definition. Defaults to the built-in dashboard." type:"existingfile"`
	From          string        `help:"First day of the date range (YYYY-MM-DD)." default:"2025-02-01"`
	To            string        `help:"Last day of the date range (YYYY-MM-DD)." default:"2025-02-28"`
	Seed          uint64        `help:"Seed for the demo data noise." default:"1"`
}

var Cli struct {
	Globals `embed:""`

	Render RenderCmd `cmd:"" help:"Render chart cards to PNG or SVG."`
	Query  QueryCmd  `cmd:"" help:"Print the rows of a card."`
	Export ExportCmd `cmd:"" help:"Export table cards to an XLSX workbook."`
	TUI    TUICmd    `cmd:"" name:"tui" help:"Browse the dashboard in the terminal."`
	PromQL PromQLCmd `cmd:"" name:"promql" help:"Print the PromQL sent for a card by the prometheus source."`
}

// Context is passed to every command's Run.
type Context struct {
	Globals
	Logger zerolog.Logger
	Out    io.Writer
}

// NewContext builds the command context, with logs going to logOut.
func NewContext(g Globals, out, logOut io.Writer) (*Context, error) {
	log, err := logger.New(g.LogLevel, g.LogFormat, logOut)
	if err != nil {
		return nil, err
	}
	return &Context{Globals: g, Logger: log, Out: out}, nil
}

// Definition returns the dashboard definition in use.
func (c *Context) Definition() (dashboard.Definition, error) {
	if c.Dashboard == "" {
		return dashboard.DefaultDefinition(), nil
	}
	return dashboard.LoadDefinition(c.Dashboard)
}

// Dates returns the date range in use.
func (c *Context) Dates() (dashboard.DateRange, error) {
	return dashboard.ParseDateRange(c.From, c.To)
}

// Client returns the query client for the selected source.
func (c *Context) Client(def dashboard.Definition, dates dashboard.DateRange) (cube.Client, error) {
	switch c.Source {
	case SourceDemo, "":
		return dashboard.NewDemoClient(def, dates, c.Seed), nil
	case SourceCube:
		if c.CubeURL == "" {
			return nil, fmt.Errorf("--cube-url is required for the %s source", SourceCube)
		}
		return cube.NewHTTPClient(c.CubeURL, c.CubeToken, c.Timeout)
	case SourcePrometheus:
		if c.PrometheusURL == "" {
			return nil, fmt.Errorf("--prometheus-url is required for the %s source", SourcePrometheus)
		}
		client, err := prometheus.NewClient(c.PrometheusURL)
		if err != nil {
			return nil, err
		}
		return prometheus.NewSource(client, c.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown source %q", c.Source)
	}
}

// Composer wires the definition, date range and client into a composer.
func (c *Context) Composer(opts ...dashboard.Option) (*dashboard.Composer, error) {
	def, err := c.Definition()
	if err != nil {
		return nil, err
	}
	dates, err := c.Dates()
	if err != nil {
		return nil, err
	}
	client, err := c.Client(def, dates)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug().Str("source", c.Source).Str("dates", dates.String()).Int("cards", len(def.Cards)).Msg("composing dashboard")

	opts = append([]dashboard.Option{
		dashboard.WithDateRange(dates),
		dashboard.WithLogger(c.Logger),
	}, opts...)
	return dashboard.NewComposer(client, def, opts...), nil
}

// card resolves a card id against the definition in use.
func (c *Context) card(id string) (dashboard.Card, error) {
	def, err := c.Definition()
	if err != nil {
		return dashboard.Card{}, err
	}
	card, ok := def.Card(id)
	if !ok {
		ids := make([]string, 0, len(def.Cards))
		for _, d := range def.Cards {
			ids = append(ids, d.ID)
		}
		return dashboard.Card{}, fmt.Errorf("unknown card %q, want one of %v", id, ids)
	}
	return card, nil
}
