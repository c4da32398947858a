package main

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bidora/storefront-server/configs"
	"github.com/bidora/storefront-server/internal/catalog"
	"github.com/bidora/storefront-server/internal/clock"
	"github.com/bidora/storefront-server/internal/countdown"
	"github.com/bidora/storefront-server/internal/handlers/rest"
	"github.com/bidora/storefront-server/internal/handlers/websocket"
	"github.com/bidora/storefront-server/internal/search"
	"github.com/bidora/storefront-server/pkg/utils"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	store     catalog.Service
	clk       clock.Clock
	threshold time.Duration
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Every(1*time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model for the Bubble Tea dashboard: a listings table with live phase and
// time-left columns, plus a log viewport.
type model struct {
	table     table.Model
	viewport  viewport.Model
	logBuffer *bytes.Buffer
	logs      []string
	showTable bool
	quitting  bool
}

func (m model) Init() tea.Cmd {
	return tick()
}

func listingRows() []table.Row {
	listings, err := store.Listings(context.Background())
	if err != nil {
		log.Error("Error getting listings: ", err)
		return nil
	}

	now := clk.Now()
	rows := make([]table.Row, 0, len(listings))
	for _, listing := range listings {
		phase := "invalid dates"
		timeLeft := "-"

		c, err := countdown.Classify(now, listing, threshold)
		if err == nil {
			phase = string(c.Phase)
			timeLeft = c.Display(countdown.Coarse)
		}

		price, _ := listing.EffectivePrice()

		title := listing.Title
		if len(title) > 32 {
			title = title[:29] + "..."
		}

		rows = append(rows, table.Row{
			listing.ID,
			title,
			phase,
			timeLeft,
			utils.FormatPrice(price),
		})
	}
	return rows
}

func newTable() model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "TITLE", Width: 34},
		{Title: "PHASE", Width: 14},
		{Title: "TIME LEFT", Width: 12},
		{Title: "PRICE", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(listingRows()),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	vp := viewport.New(100, 15)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		PaddingRight(2)
	return model{table: t, showTable: true, viewport: vp}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)
	switch msg := msg.(type) {
	case tickMsg:
		if m.showTable {
			m.table.SetRows(listingRows())
		} else {
			// refresh logs to get new logs
			m.logs = nil
			logs := strings.Split(m.logBuffer.String(), "\n")
			m.logs = append(m.logs, logs...)
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			if !m.showTable {
				m.viewport.LineUp(1)
			}
		case "down":
			if !m.showTable {
				m.viewport.LineDown(1)
			}
		case "tab":
			m.showTable = !m.showTable
			if !m.showTable {
				// Load logs from buffer when switching to logs view
				m.logs = nil
				logs := strings.Split(m.logBuffer.String(), "\n")
				m.logs = append(m.logs, logs...)
			}
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.showTable {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if m.quitting {
		return "Bye!\n"
	}
	if m.showTable {
		return baseStyle.Render(m.table.View()) + "\n" + helpStyle.Render("• tab: switch modes • q: exit\n")
	}

	styledLogs := make([]string, len(m.logs))
	copy(styledLogs, m.logs)

	styledLogs = utils.ColorizeLogs(styledLogs)

	// only show last 15 lines of logs
	if len(styledLogs) > 15 {
		styledLogs = styledLogs[len(styledLogs)-15:]
	}

	m.viewport.SetContent(strings.Join(styledLogs, "\n"))
	return m.viewport.View() + "\n" + helpStyle.Render("• tab: switch modes • q: exit\n")
}

func main() {
	// Load configurations
	cfg, err := configs.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	port := cfg.Server.Port
	if port == "" {
		port = "8080" // Default port if not specified
	}

	// Setup logger
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "debug" // Default log level if not specified
	}
	logLevel, err := log.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		log.Error("Invalid log level: ", err)
	}
	log.SetLevel(logLevel)

	clk = clock.NewSystem()
	threshold = cfg.Catalog.EndingSoonThreshold

	// Initialize the catalog store
	switch cfg.Catalog.Source {
	case "postgres":
		store, err = catalog.NewPostgres(cfg)
		if err != nil {
			log.Fatal("Error opening catalog database: ", err)
		}
	default:
		now := clk.Now()
		store = catalog.NewMemory(catalog.SeedListings(now), catalog.SeedCategories())
	}
	defer store.Close()

	opts := search.Options{
		EndingSoonThreshold: cfg.Catalog.EndingSoonThreshold,
		StartingSoonWindow:  cfg.Catalog.StartingSoonWindow,
	}

	// REST API
	apiHandler := rest.NewHandler(store, clk, opts, cfg.Server.PingMessage)
	router := apiHandler.SetupRoutes(cfg.Features.AllowCrossOrigin)

	// Live countdown feed
	listingsFeed := websocket.NewListingsHandler(store, clk, threshold, cfg.Catalog.TickInterval, int64(cfg.WebSocket.MaxMessageSize))
	listingsFeed.StartPeriodicCheck()
	defer listingsFeed.Stop()

	router.HandleFunc("/ws/listings", listingsFeed.HandleListings)

	// Start server in a goroutine; listen failures come back over the
	// channel so the catalog and feed defers still run.
	log.Infof("Server started on port %s", port)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- http.ListenAndServe(":"+port, router)
	}()

	if !cfg.Features.EnableDashboard {
		log.Error("Server stopped: ", <-serverErr)
		return
	}

	// Redirect logs to buffer for the dashboard log view
	logBuffer := new(bytes.Buffer)
	log.SetOutput(logBuffer)

	// Start Bubble Tea program
	m := newTable()
	m.logBuffer = logBuffer
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Errorf("Error running Bubble Tea program: %v", err)
	}
}
