package source

import (
	"fmt"
	"os"

	netapi "github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/hdf5"
	"github.com/hashicorp/go-multierror"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

const hdf5Magic = 0x89

type opener struct {
	name string
	open func(string) (netapi.Group, error)
}

// An OpenOption adjusts how Open picks a file backend.
type OpenOption func(*openConfig)

type openConfig struct {
	log     *util.Logger
	backend string
}

// WithOpenLogger logs which backends were tried and which one served
// the file.
func WithOpenLogger(l *util.Logger) OpenOption {
	return func(c *openConfig) { c.log = l }
}

// WithBackend restricts Open to one backend, "cdf" or "hdf5", instead
// of sniffing.
func WithBackend(name string) OpenOption {
	return func(c *openConfig) { c.backend = name }
}

// Open opens a netCDF file.  The first byte picks the likelier of the
// CDF and HDF5 backends; the other is still tried on failure, and a
// refusal by both reports each backend's error.
func Open(fname string, opts ...OpenOption) (netapi.Group, error) {
	var cfg openConfig
	for _, o := range opts {
		o(&cfg)
	}
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrAccess, err)
	}
	var magic [1]byte
	_, rerr := f.Read(magic[:])
	f.Close()
	if rerr != nil {
		return nil, fmt.Errorf("%w: %s: %v", api.ErrAccess, fname, rerr)
	}

	order := []opener{{"cdf", cdf.Open}, {"hdf5", hdf5.Open}}
	if magic[0] == hdf5Magic {
		order[0], order[1] = order[1], order[0]
	}
	if cfg.backend != "" {
		keep := order[:0]
		for _, o := range order {
			if o.name == cfg.backend {
				keep = append(keep, o)
			}
		}
		if len(keep) == 0 {
			return nil, fmt.Errorf("%w: unknown backend %q", api.ErrConfig, cfg.backend)
		}
		order = keep
	}
	var errs *multierror.Error
	for _, o := range order {
		g, err := o.open(fname)
		if err == nil {
			cfg.log.Infof("%s: opened with %s backend", fname, o.name)
			return g, nil
		}
		cfg.log.Infof("%s: %s backend refused: %v", fname, o.name, err)
		errs = multierror.Append(errs, fmt.Errorf("%s: %v", o.name, err))
	}
	return nil, fmt.Errorf("%w: %s: %v", api.ErrAccess, fname, errs)
}
