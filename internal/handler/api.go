package handler

import (
	"github.com/launchdeck/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	projects  *service.ProjectService
	publisher *service.PublishService
	signals   *service.SignalService
	outreach  *service.OutreachService
	visits    *service.VisitService
	system    *service.SystemSettingService
	copyGen   service.CopyGenerator
	searcher  service.SignalSearcher
	editors   *editorRegistry
	uploadDir string
	uploadURL string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, uploadDir, uploadURL string) *API {
	systemService := service.NewSystemSettingService(gdb)

	return &API{
		db:        gdb,
		projects:  service.NewProjectService(gdb),
		publisher: service.NewPublishService(gdb),
		signals:   service.NewSignalService(gdb),
		outreach:  service.NewOutreachService(gdb),
		visits:    service.NewVisitService(gdb),
		system:    systemService,
		copyGen:   service.NewAICopyService(systemService),
		searcher:  service.NewRedditSearcher(),
		editors:   newEditorRegistry(),
		uploadDir: uploadDir,
		uploadURL: uploadURL,
	}
}

// SetCopyGenerator swaps the AI collaborator, mainly for tests.
func (a *API) SetCopyGenerator(gen service.CopyGenerator) {
	a.copyGen = gen
}

// SetSearcher swaps the search collaborator, mainly for tests.
func (a *API) SetSearcher(searcher service.SignalSearcher) {
	a.searcher = searcher
}

// DB exposes the underlying gorm instance for bootstrap paths.
func (a *API) DB() *gorm.DB {
	return a.db
}
