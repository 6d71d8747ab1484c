// Command cachefetch is a small harness around the fetch dispatcher: it
// seeds a cache provider from a YAML config, reads records as JSON lines on
// stdin and prints each record together with the relationship it routed to.
//
// Example config:
//
//	provider: memory
//	template: "${cacheKeyAttribute}"
//	attribute: test
//	max_attribute_length: 256
//	decoder: raw
//	workers: 4
//	seed:
//	  key1: value1
//	  key2: value2
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"

	"github.com/flowgrid/cachefetch"
	"github.com/flowgrid/cachefetch/codec"
	asynchook "github.com/flowgrid/cachefetch/hooks/async"
	sloglog "github.com/flowgrid/cachefetch/log/slog"
	pr "github.com/flowgrid/cachefetch/provider"
	"github.com/flowgrid/cachefetch/provider/bigcache"
	"github.com/flowgrid/cachefetch/provider/memory"
	"github.com/flowgrid/cachefetch/provider/redis"
	"github.com/flowgrid/cachefetch/provider/ristretto"
	"github.com/flowgrid/cachefetch/sloghooks"
)

type config struct {
	Provider           string            `yaml:"provider"` // memory | bigcache | ristretto | redis
	RedisAddr          string            `yaml:"redis_addr"`
	Template           string            `yaml:"template"`
	Attribute          string            `yaml:"attribute"`
	MaxAttributeLength int               `yaml:"max_attribute_length"`
	Decoder            string            `yaml:"decoder"` // raw | json | msgpack | cbor
	Workers            int               `yaml:"workers"`
	Seed               map[string]string `yaml:"seed"`
}

type recordLine struct {
	Body       string            `json:"body"`
	Attributes map[string]string `json:"attributes"`
}

type resultLine struct {
	Relationship string            `json:"relationship"`
	Body         string            `json:"body"`
	Attributes   map[string]string `json:"attributes"`
}

func main() {
	cfgPath := flag.String("config", "cachefetch.yaml", "path to the YAML config")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(*cfgPath, logger); err != nil {
		logger.Error("cachefetch failed", "err", err)
		os.Exit(1)
	}
}

func run(cfgPath string, logger *slog.Logger) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	ctx := context.Background()

	prov, err := buildProvider(cfg)
	if err != nil {
		return err
	}
	for k, v := range cfg.Seed {
		if err := prov.Set(ctx, k, []byte(v), 0); err != nil {
			return fmt.Errorf("seed %q: %w", k, err)
		}
	}

	dec, err := buildDecoder(cfg.Decoder)
	if err != nil {
		return err
	}

	hooks := asynchook.New(sloghooks.New(logger, sloghooks.Options{MissEvery: 1}), 1, 1024)
	defer hooks.Close()

	f, err := cachefetch.New(cachefetch.Options{
		KeyTemplate:        cfg.Template,
		Attribute:          cfg.Attribute,
		MaxAttributeLength: cfg.MaxAttributeLength,
		Provider:           prov,
		Decoder:            dec,
		Logger:             sloglog.Logger{L: logger},
		Hooks:              hooks,
		CloseProvider:      true,
	})
	if err != nil {
		return err
	}
	defer f.Close(ctx)

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	var outMu sync.Mutex
	enc := json.NewEncoder(os.Stdout)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var in recordLine
		if err := json.Unmarshal(line, &in); err != nil {
			return fmt.Errorf("bad record line: %w", err)
		}
		g.Go(func() error {
			rec := &cachefetch.Record{
				Body:       []byte(in.Body),
				Attributes: in.Attributes,
			}
			rel := f.Route(gctx, rec)

			outMu.Lock()
			defer outMu.Unlock()
			return enc.Encode(resultLine{
				Relationship: string(rel),
				Body:         string(rec.Body),
				Attributes:   rec.Attributes,
			})
		})
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return g.Wait()
}

func loadConfig(path string) (config, error) {
	var cfg config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Provider == "" {
		cfg.Provider = "memory"
	}
	return cfg, nil
}

func buildProvider(cfg config) (pr.Provider, error) {
	switch cfg.Provider {
	case "memory":
		return memory.New(time.Minute), nil
	case "bigcache":
		p, err := bigcache.New(bigcache.Config{LifeWindow: 10 * time.Minute})
		return p, err
	case "ristretto":
		p, err := ristretto.New(ristretto.Config{
			NumCounters: 1e6,
			MaxCost:     64 << 20,
			BufferItems: 64,
		})
		return p, err
	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		p, err := redis.New(redis.Config{Client: client, CloseClient: true})
		return p, err
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func buildDecoder(name string) (codec.Decoder, error) {
	switch name {
	case "", "raw":
		return codec.Raw{}, nil
	case "json":
		return codec.JSON{}, nil
	case "msgpack":
		return codec.Msgpack{}, nil
	case "cbor":
		c, err := codec.NewCBOR()
		return c, err
	default:
		return nil, fmt.Errorf("unknown decoder %q", name)
	}
}
