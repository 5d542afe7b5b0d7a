package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/thebartekbanach/pictech/pkg/pictech"
)

type application struct {
	service pictech.Service
	fs      afero.Fs
	logger  *log.Logger
}

func newApplication(service pictech.Service, fs afero.Fs, logger *log.Logger) *application {
	return &application{service, fs, logger}
}
