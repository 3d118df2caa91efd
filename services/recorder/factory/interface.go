package factory

// Server defines the recorder's web server operations
type Server interface {
	Start()
	Address() string
	Close() error
	IsInterfaceNil() bool
}
