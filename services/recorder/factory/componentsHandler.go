package factory

import (
	"github.com/iulianpascalau/site-monitoring/services/recorder/api"
	"github.com/iulianpascalau/site-monitoring/services/recorder/config"
	"github.com/iulianpascalau/site-monitoring/services/recorder/recorder"
	"github.com/iulianpascalau/site-monitoring/services/recorder/storage"
)

type componentsHandler struct {
	store    api.Storage
	recorder api.Recorder
	server   Server
}

// NewComponentsHandler creates a new components handler. The storage client is
// constructed once here and reused for the whole process lifetime.
func NewComponentsHandler(
	dbPath string,
	serviceKeyApi string,
	cfg config.Config,
) (*componentsHandler, error) {
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	rec, err := recorder.NewHistoryRecorder(store, cfg.TTLDays)
	if err != nil {
		return nil, err
	}

	serverArgs := api.ArgsWebServer{
		ServiceKeyApi:  serviceKeyApi,
		ListenAddress:  cfg.ListenAddress,
		Recorder:       rec,
		Storage:        store,
		GeneralHandler: api.CORSMiddleware,
	}

	server, err := api.NewServer(serverArgs)
	if err != nil {
		return nil, err
	}

	return &componentsHandler{
		store:    store,
		recorder: rec,
		server:   server,
	}, nil
}

// GetStore returns the storage component
func (ch *componentsHandler) GetStore() api.Storage {
	return ch.store
}

// GetRecorder returns the recorder component
func (ch *componentsHandler) GetRecorder() api.Recorder {
	return ch.recorder
}

// GetServer returns the server component
func (ch *componentsHandler) GetServer() Server {
	return ch.server
}

// Start starts the inner components
func (ch *componentsHandler) Start() {
	ch.server.Start()
}

// Close closes the inner components
func (ch *componentsHandler) Close() {
	_ = ch.server.Close()
	_ = ch.store.Close()
}
