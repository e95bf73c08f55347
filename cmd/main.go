package main

import (
	"health-wheel/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := bootstrap.NewRootCommand().Execute(); err != nil {
		logrus.Fatalf("%v", err)
	}
}
