package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/wallpreview-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel is the settings form on the preview screen. ApplyChanges writes
// into *config.Config and saves it; the running session keeps its settings
// until the next launch.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	parent   *FrameWidget
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applyBtn *ButtonWidget
	note     *LabelWidget
	widgets  map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the form bound to cfg inside parent.
func NewConfigPanel(parent *FrameWidget, cfg *config.Config, cfgPath string, logger *slog.Logger) ConfigPanel {
	return &configPanel{parent: parent, cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := v.parent.Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := v.parent.Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("scaleMode", "Scale Mode (fixed/calibrated)", c.ScaleMode)
	makeRow("referencePixels", "Reference Pixels", fmt.Sprintf("%.1f", c.ReferencePixels))
	makeRow("referenceInches", "Reference Inches", fmt.Sprintf("%.1f", c.ReferenceInches))
	makeRow("calibrationStep", "Ask Distance (true/false)", fmt.Sprintf("%t", c.CalibrationStep))
	makeRow("defaultProfile", "Default Distance", c.DefaultProfile)
	makeRow("facing", "Camera (environment/user)", c.Facing)
	makeRow("mirrorFront", "Mirror Front Camera (true/false)", fmt.Sprintf("%t", c.MirrorFront))
	makeRow("readyTimeoutMs", "Camera Timeout Ms", fmt.Sprintf("%d", c.ReadyTimeoutMs))
	makeRow("exitTo", "Exit To (preview/upload)", c.ExitTo)
	v.applyBtn = v.parent.Button(Txt("Save Settings"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	v.note = v.parent.Label(Txt(""), Anchor("w"))
	Grid(v.note, Row(row), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(state(enabled))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(state(enabled))
	}
}

func (v *configPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	s := strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
	return s, s != ""
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignFloat := func(id string, dst *float64) {
		if s, ok := v.text(id); ok {
			if f, ok := parseFloatField(s); ok {
				*dst = f
			}
		}
	}
	assignInt := func(id string, dst *int) {
		if s, ok := v.text(id); ok {
			if i, ok := parseIntField(s); ok {
				*dst = i
			}
		}
	}
	assignBool := func(id string, dst *bool) {
		if s, ok := v.text(id); ok {
			if b, ok := parseBoolLoose(s); ok {
				*dst = b
			}
		}
	}
	assignString := func(id string, dst *string) {
		if s, ok := v.text(id); ok {
			*dst = s
		}
	}
	assignString("scaleMode", &cfg.ScaleMode)
	assignFloat("referencePixels", &cfg.ReferencePixels)
	assignFloat("referenceInches", &cfg.ReferenceInches)
	assignBool("calibrationStep", &cfg.CalibrationStep)
	assignString("defaultProfile", &cfg.DefaultProfile)
	assignString("facing", &cfg.Facing)
	assignBool("mirrorFront", &cfg.MirrorFront)
	assignInt("readyTimeoutMs", &cfg.ReadyTimeoutMs)
	assignString("exitTo", &cfg.ExitTo)
	cfg.Profiles = append([]config.Profile(nil), v.cfg.Profiles...)
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if v.cfgPath == "" {
		v.setNote("No config file; settings kept for this run only.")
		return
	}
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
		v.setNote("Save failed: " + err.Error())
		return
	}
	if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	v.setNote("Saved. Restart to apply.")
}

func (v *configPanel) setNote(s string) {
	if v.note != nil {
		v.note.Configure(Txt(s))
	}
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
