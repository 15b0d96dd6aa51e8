package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Listen   string   `koanf:"listen"`
	Calendar Calendar `koanf:"calendar"`
	Weather  Weather  `koanf:"weather"`
	Sync     Sync     `koanf:"sync"`
	Google   Google   `koanf:"google"`
	Database Database `koanf:"db"`
}

type Calendar struct {
	Id              string `koanf:"id"`
	DefaultLocation string `koanf:"defaultlocation"`
}

type Weather struct {
	ForecastUrl string `koanf:"forecasturl"`
	GeocodeUrl  string `koanf:"geocodeurl"`
}

// Sync intervals are time.ParseDuration strings. Fast must be shorter
// than slow; the scheduler rejects the config otherwise.
type Sync struct {
	WindowDays   int    `koanf:"windowdays"`
	FastInterval string `koanf:"fastinterval"`
	SlowInterval string `koanf:"slowinterval"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Listen: ":8181",
		Calendar: Calendar{
			Id: "primary",
		},
		Weather: Weather{
			ForecastUrl: "https://api.open-meteo.com/v1/forecast",
			GeocodeUrl:  "https://geocoding-api.open-meteo.com/v1/search",
		},
		Sync: Sync{
			WindowDays:   7,
			FastInterval: "5m",
			SlowInterval: "6h",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "forecal",
			Pass:   "",
			Name:   "forecal",
			Schema: "forecal",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "FORECAL_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "FORECAL_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
