// Copyright 2023 Versity Software
// This file is licensed under the Apache License, Version 2.0
// (the "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/urfave/cli/v2"

	"github.com/nexusfs/s3gw/backend/bsclient/fsclient"
	"github.com/nexusfs/s3gw/backend/gateway"
	"github.com/nexusfs/s3gw/s3api"
	"github.com/nexusfs/s3gw/s3log"
)

var (
	bucketPath        string
	port              string
	defaultDurability int
	maxFilenameLength int
	prettyPrint       bool
	s3Version         string
	durabilityMapFile string
	bsUser            string
	certFile, keyFile string
	accessLog         string
	debug             bool
	healthPath        string
)

var (
	// Version is the latest tag (set within Makefile)
	Version = "git"
	// Build is the commit hash (set within Makefile)
	Build = "norev"
	// BuildTime is the date/time of build (set within Makefile)
	BuildTime = "none"
)

func main() {
	setupSignalHandler()

	app := initApp()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-sigDone
		fmt.Fprintf(os.Stderr, "terminating signal caught, shutting down\n")
		cancel()
	}()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func initApp() *cli.App {
	return &cli.App{
		Name:  "s3gw",
		Usage: "Start the S3-compatible protocol gateway in front of a backing store.",
		Description: `s3gw translates S3 bucket/object operations into operations against a
hierarchical backing store: buckets become top-level directories, object keys
become nested paths, and storage classes become BS durability levels.`,
		Flags: initFlags(),
		Action: func(ctx *cli.Context) error {
			return runGateway(ctx)
		},
	}
}

func initFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "version",
			Usage:   "list s3gw version",
			Aliases: []string{"v"},
			Action: func(*cli.Context, bool) error {
				fmt.Println("Version  :", Version)
				fmt.Println("Build    :", Build)
				fmt.Println("BuildTime:", BuildTime)
				os.Exit(0)
				return nil
			},
		},
		&cli.StringFlag{
			Name:        "bucket-path",
			Usage:       "backing store root directory; each immediate subdirectory is a bucket",
			Value:       ".",
			Destination: &bucketPath,
			Aliases:     []string{"b"},
		},
		&cli.StringFlag{
			Name:        "port",
			Usage:       "gateway listen address <ip>:<port> or :<port>",
			Value:       ":7070",
			Destination: &port,
			Aliases:     []string{"p"},
		},
		&cli.IntFlag{
			Name:        "default-durability",
			Usage:       "durability level assumed for objects with no explicit storage class",
			Value:       2,
			Destination: &defaultDurability,
		},
		&cli.IntFlag{
			Name:        "max-filename-length",
			Usage:       "maximum length, in bytes, of a single path segment",
			Value:       255,
			Destination: &maxFilenameLength,
		},
		&cli.BoolFlag{
			Name:        "pretty-print",
			Usage:       "indent XML response bodies",
			Destination: &prettyPrint,
		},
		&cli.StringFlag{
			Name:        "s3-version",
			Usage:       "S3 API document version stamped into XML response namespaces",
			Value:       "2006-03-01",
			Destination: &s3Version,
		},
		&cli.StringFlag{
			Name:        "durability-map",
			Usage:       "path to a JSON file holding storageClassMappingToDurability/durabilityMappingToStorageClass",
			Destination: &durabilityMapFile,
		},
		&cli.StringFlag{
			Name:        "bs-user",
			Usage:       "identity attributed to Owner/DisplayName fields in listing responses",
			Value:       "s3gw",
			Destination: &bsUser,
		},
		&cli.StringFlag{
			Name:        "cert",
			Usage:       "TLS cert file",
			Destination: &certFile,
		},
		&cli.StringFlag{
			Name:        "key",
			Usage:       "TLS key file",
			Destination: &keyFile,
		},
		&cli.StringFlag{
			Name:        "access-log",
			Usage:       "path to write the audit log file to; disabled when empty",
			Destination: &accessLog,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug output",
			Destination: &debug,
		},
		&cli.StringFlag{
			Name:        "health-path",
			Usage:       "path serving a 200-OK liveness check, wired ahead of the bucket router; disabled when empty",
			Value:       "/healthz",
			Destination: &healthPath,
		},
	}
}

// durabilityMapFileShape is the on-disk JSON layout for -durability-map:
// storageClassMappingToDurability/durabilityMappingToStorageClass.
type durabilityMapFileShape struct {
	StorageClassMappingToDurability map[string]int    `json:"storageClassMappingToDurability"`
	DurabilityMappingToStorageClass map[string]string `json:"durabilityMappingToStorageClass"`
}

func loadDurabilityMap(path string, defaultDurability int) (gateway.DurabilityMap, error) {
	if path == "" {
		return gateway.DefaultDurabilityMap(defaultDurability), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return gateway.DurabilityMap{}, fmt.Errorf("open durability map: %w", err)
	}
	defer f.Close()

	var shape durabilityMapFileShape
	if err := json.NewDecoder(f).Decode(&shape); err != nil {
		return gateway.DurabilityMap{}, fmt.Errorf("parse durability map: %w", err)
	}

	durabilityToClass := make(map[int]string, len(shape.DurabilityMappingToStorageClass))
	for k, v := range shape.DurabilityMappingToStorageClass {
		var level int
		if _, err := fmt.Sscanf(k, "%d", &level); err != nil {
			return gateway.DurabilityMap{}, fmt.Errorf("parse durability map: bad durability level %q", k)
		}
		durabilityToClass[level] = v
	}

	return gateway.DurabilityMap{
		ClassToDurability: shape.StorageClassMappingToDurability,
		DurabilityToClass: durabilityToClass,
		DefaultDurability: defaultDurability,
	}, nil
}

func runGateway(cliCtx *cli.Context) error {
	app := fiber.New(fiber.Config{
		AppName:      "s3gw",
		ServerHeader: "S3GW",
		BodyLimit:    5 * 1024 * 1024 * 1024,
	})

	var opts []s3api.Option

	if certFile != "" || keyFile != "" {
		if certFile == "" {
			return fmt.Errorf("TLS key specified without cert file")
		}
		if keyFile == "" {
			return fmt.Errorf("TLS cert specified without key file")
		}

		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return fmt.Errorf("tls: load certs: %v", err)
		}
		opts = append(opts, s3api.WithTLS(cert))
	}

	if debug {
		opts = append(opts, s3api.WithDebug())
	}
	if prettyPrint {
		opts = append(opts, s3api.WithPrettyPrint())
	}
	if healthPath != "" {
		opts = append(opts, s3api.WithHealth(healthPath))
	}
	opts = append(opts, s3api.WithS3Version(s3Version))

	durability, err := loadDurabilityMap(durabilityMapFile, defaultDurability)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(bucketPath)
	if err != nil {
		return fmt.Errorf("resolve bucket path: %w", err)
	}

	bs := fsclient.New(bsUser)
	be := gateway.New(bs, gateway.Options{
		Root:              root,
		MaxPathLength:     4096,
		MaxSegmentLength:  maxFilenameLength,
		DefaultDurability: defaultDurability,
		Durability:        durability,
	})

	logger, err := s3log.InitLogger(&s3log.LogConfig{LogFile: accessLog})
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}

	srv, err := s3api.New(app, be, port, logger, opts...)
	if err != nil {
		return fmt.Errorf("init gateway: %v", err)
	}

	c := make(chan error, 1)
	go func() { c <- srv.Serve() }()

	select {
	case <-cliCtx.Done():
		be.Shutdown()
		return cliCtx.Err()
	case err := <-c:
		be.Shutdown()
		return err
	}
}
