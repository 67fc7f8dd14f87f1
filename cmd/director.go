package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/trainer400/CampoMinato/director/constraint"
	"github.com/trainer400/CampoMinato/director/random"
	"github.com/trainer400/CampoMinato/game"
)

var directors = map[string]func(seed int64, log logrus.FieldLogger) game.Director{
	"none": nil,
	"random": func(seed int64, log logrus.FieldLogger) game.Director {
		return &random.Director{Seed: seed}
	},
	"constraint": func(seed int64, log logrus.FieldLogger) game.Director {
		return &constraint.Director{Seed: seed, Logger: log}
	},
}

func directorNames() []string {
	names := make([]string, 0, len(directors))
	for name := range directors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newDirector(name string, seed int64, log logrus.FieldLogger) (game.Director, error) {
	create, isValid := directors[name]
	if !isValid {
		return nil, errors.Errorf("invalid director %q, expected one of %s", name, strings.Join(directorNames(), ", "))
	}
	if create == nil {
		return nil, nil
	}
	return create(seed, log), nil
}

type directorValue string

func newDirectorValue(val string, p *string) *directorValue {
	*p = val
	return (*directorValue)(p)
}

func (value *directorValue) String() string {
	return string(*value)
}

func (value *directorValue) Set(name string) error {
	if _, isValid := directors[name]; !isValid {
		return fmt.Errorf("invalid director, expected one of %s", strings.Join(directorNames(), ", "))
	}
	*value = directorValue(name)
	return nil
}

func (value *directorValue) Type() string {
	return "director"
}
