// Package main generates a self-signed server certificate and key for
// running PageGuard over HTTPS in development.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atinyakov/PageGuard/internal/certgen"
)

func main() {
	dir := flag.String("dir", "certs", "output directory")
	hosts := flag.String("hosts", "localhost,127.0.0.1", "comma-separated host names and IPs")
	days := flag.Int("days", 365, "validity in days")
	flag.Parse()

	certPath, keyPath, err := run(*dir, strings.Split(*hosts, ","), time.Duration(*days)*24*time.Hour)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Certificate written to %s, key to %s\n", certPath, keyPath)
}

// run writes server.crt and server.key into dir.
func run(dir string, hosts []string, validFor time.Duration) (string, string, error) {
	var clean []string
	for _, h := range hosts {
		if h = strings.TrimSpace(h); h != "" {
			clean = append(clean, h)
		}
	}

	certPEM, keyPEM, err := certgen.GenerateServerCertificate(clean, validFor)
	if err != nil {
		return "", "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("create %s: %w", dir, err)
	}

	certPath := filepath.Join(dir, "server.crt")
	keyPath := filepath.Join(dir, "server.key")
	if err := os.WriteFile(certPath, certPEM, 0644); err != nil {
		return "", "", fmt.Errorf("write cert: %w", err)
	}
	if err := os.WriteFile(keyPath, keyPEM, 0600); err != nil {
		return "", "", fmt.Errorf("write key: %w", err)
	}
	return certPath, keyPath, nil
}
