package client

import (
	"fmt"
	"os"
	"time"
)

const DefaultTimeout = 3 * time.Second

type OptionFunc func(o *Options)

type Options struct {
	// Name of the caller service, used for logging and the User-Agent
	name string

	// Defaults to CRG_SERVICE_DOMAIN
	serviceDomain string

	// Defaults to the service's own sub domain
	serviceHost string

	// Added before the API paths
	pathPrefix string

	// Used only when the URL is built from the service domain
	useHTTPS bool

	// Full URL to the service (including protocol), overrides serviceDomain and serviceHost
	baseURL string

	timeout time.Duration
}

func WithName(name string) OptionFunc {
	return func(o *Options) {
		o.name = name
	}
}

func WithServiceDomain(serviceDomain string) OptionFunc {
	return func(o *Options) {
		o.serviceDomain = serviceDomain
	}
}

func WithServiceHost(serviceHost string) OptionFunc {
	return func(o *Options) {
		o.serviceHost = serviceHost
	}
}

func WithPathPrefix(pathPrefix string) OptionFunc {
	return func(o *Options) {
		o.pathPrefix = pathPrefix
	}
}

func WithUseHTTPS(useHTTPS bool) OptionFunc {
	return func(o *Options) {
		o.useHTTPS = useHTTPS
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(o *Options) {
		o.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(o *Options) {
		o.timeout = timeout
	}
}

func NewOptions(optionFuncs ...OptionFunc) *Options {
	options := &Options{
		name: "unknown-caller",
	}

	for _, optionFunc := range optionFuncs {
		optionFunc(options)
	}

	return options
}

func (o *Options) Name() string {
	return o.name
}

func (o *Options) BaseURL(subDomain string, pathPrefix string) string {
	if o.baseURL != "" {
		return o.baseURL
	}

	serviceDomain := o.serviceDomain
	if serviceDomain == "" {
		serviceDomain = os.Getenv("CRG_SERVICE_DOMAIN")
	}

	serviceHost := o.serviceHost
	if serviceHost == "" {
		serviceHost = subDomain
	}

	prefix := o.pathPrefix
	if prefix == "" {
		prefix = pathPrefix
	}

	protocol := "http"
	if o.useHTTPS {
		protocol = "https"
	}

	return fmt.Sprintf("%s://%s.%s%s", protocol, serviceHost, serviceDomain, prefix)
}

func (o *Options) Timeout() time.Duration {
	if o.timeout != 0 {
		return o.timeout
	}
	return DefaultTimeout
}
