package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soocke/wallpreview-go/assets"
	"github.com/soocke/wallpreview-go/config"
	"github.com/soocke/wallpreview-go/domain/arsession"
	"github.com/soocke/wallpreview-go/domain/artwork"
	"github.com/soocke/wallpreview-go/domain/capture"
	"github.com/soocke/wallpreview-go/domain/overlay"
	"github.com/soocke/wallpreview-go/domain/session"
	"github.com/soocke/wallpreview-go/domain/sizing"
	"github.com/soocke/wallpreview-go/ui/model"
	"github.com/soocke/wallpreview-go/ui/presenter"
	"github.com/soocke/wallpreview-go/ui/view"
)

// overlayCacheSize bounds the fitted-artwork cache (two slots times a few sizes and zooms).
const overlayCacheSize = 64

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Catalog  *sizing.Catalog
	Manager  *capture.Manager
	Session  *arsession.Session
	Decoder  *artwork.Decoder
	Renderer *overlay.Renderer

	Live    *model.LiveModel
	Status  *model.StatusModel
	Surface *model.SurfaceModel

	RootView *view.RootView
	UI       view.UI

	// Presenters
	PhasePresenter  *presenter.PhasePresenter
	LivePresenter   *presenter.LivePresenter
	UploadPresenter *presenter.UploadPresenter
	StatusPresenter *presenter.StatusPresenter
	FramePresenter  *presenter.FramePresenter
	Loop            *presenter.Loop
}

// BuildContainer constructs all components. No Tk widgets are created; the
// root view is built by the app once the window exists.
func BuildContainer(ctx context.Context, cfg *config.Config, cfgPath string, logger *slog.Logger) (*AppContainer, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}

	catalog, err := assets.LoadCatalog(cfg.CatalogPath, cfg.DefaultSize)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	c.Catalog = catalog
	device, err := capture.NewDevice(cfg.Backend, logger, cfg.CameraIndex)
	if err != nil {
		return nil, err
	}
	c.Manager = capture.NewManager(device, capture.ManagerOptions{ReadyTimeout: cfg.ReadyTimeout(), Logger: logger})
	c.Renderer, err = overlay.NewRenderer(overlayCacheSize, logger)
	if err != nil {
		return nil, err
	}
	c.Decoder = artwork.NewDecoder(logger)

	c.Live = model.NewLiveModel()
	c.Status = model.NewStatusModel(model.DefaultStatusTTL)
	c.Surface = model.NewSurfaceModel()

	c.Session = arsession.New(arsession.Options{
		Converter:        cfg.Converter(),
		Catalog:          catalog,
		Profiles:         cfg.CalibrationProfiles(),
		DefaultProfileID: cfg.DefaultProfile,
		Manager:          c.Manager,
		CalibrationStep:  cfg.CalibrationStep,
		ExitTo:           session.ParseExitTarget(cfg.ExitTo),
		Constraints: capture.Constraints{
			Facing:      capture.ParseFacing(cfg.Facing),
			IdealWidth:  cfg.IdealWidth,
			IdealHeight: cfg.IdealHeight,
		},
		MirrorFront: cfg.MirrorFront,
		Notify:      func(m arsession.Message) { c.StatusPresenter.Notify(m) },
		Logger:      logger,
	})

	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView

	c.PhasePresenter = presenter.NewPhasePresenter(c.Session, c.UI, c.Surface)
	c.LivePresenter = presenter.NewLivePresenter(ctx, c.Session, c.UI, logger)
	c.UploadPresenter = presenter.NewUploadPresenter(c.Decoder, c.Session, c.UI, c.Status, logger)
	c.StatusPresenter = presenter.NewStatusPresenter(c.Session, c.Live, c.Status, c.UI)
	c.FramePresenter = presenter.NewFramePresenter(c.Session, c.Renderer, c.UI, c.Surface, logger)
	c.Session.AddListener(c.PhasePresenter.OnState)
	return c, nil
}

// Close stops the frame worker and releases capture.
func (c *AppContainer) Close() {
	if c == nil {
		return
	}
	c.FramePresenter.Stop()
	if c.Session != nil {
		c.Session.Close()
	}
	if c.Renderer != nil {
		c.Renderer.Purge()
	}
}
