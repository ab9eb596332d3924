package pages

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/webdesk/webdesk/internal/config"
	"github.com/webdesk/webdesk/internal/theme"
	"github.com/webdesk/webdesk/internal/wm"
)

func init() {
	Register(Page{
		Route: "/monitor",
		Title: "System Monitor",
		New: func(body *wm.Surface, args ...any) (wm.Component, error) {
			return &monitorPage{body: body}, nil
		},
	})
}

// monitorPage samples host stats and renders them into the window body.
// Sampling is throttled; the shell calls Refresh on every tick.
type monitorPage struct {
	wm.BaseComponent
	body       *wm.Surface
	lastSample time.Time
}

func (p *monitorPage) Mount() {
	p.render()
}

func (p *monitorPage) Refresh() {
	if time.Since(p.lastSample) < config.StatsUpdateInterval {
		return
	}
	p.render()
}

func (p *monitorPage) render() {
	p.lastSample = time.Now()

	titleStyle := lipgloss.NewStyle().Foreground(theme.PageTitle()).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(theme.PageSubtitle())
	valueStyle := lipgloss.NewStyle().Foreground(theme.PageText())

	var b strings.Builder
	b.WriteString(titleStyle.Render("System Monitor"))
	b.WriteString("\n\n")

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		b.WriteString(labelStyle.Render("CPU     "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%5.1f%%  %s", percents[0], bar(percents[0], 20))))
		b.WriteString("\n")
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		b.WriteString(labelStyle.Render("Memory  "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%5.1f%%  %s", vm.UsedPercent, bar(vm.UsedPercent, 20))))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("        "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f GiB / %.1f GiB",
			float64(vm.Used)/(1<<30), float64(vm.Total)/(1<<30))))
		b.WriteString("\n")
	}

	if avg, err := load.Avg(); err == nil {
		b.WriteString(labelStyle.Render("Load    "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f %.2f %.2f", avg.Load1, avg.Load5, avg.Load15)))
		b.WriteString("\n")
	}

	if info, err := host.Info(); err == nil {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Host    "))
		b.WriteString(valueStyle.Render(info.Hostname))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("OS      "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s %s (%s)", info.Platform, info.PlatformVersion, info.KernelArch)))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Uptime  "))
		b.WriteString(valueStyle.Render((time.Duration(info.Uptime) * time.Second).String()))
		b.WriteString("\n")
	}

	p.body.SetContent(b.String())
}

func bar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	if config.UseASCIIOnly {
		return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
