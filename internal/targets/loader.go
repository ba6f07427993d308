// Package targets provides scan target loading and classification.
package targets

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pathhound/pathhound/internal/ldap"
	"github.com/pathhound/pathhound/internal/logger"
	"github.com/pathhound/pathhound/internal/utils"
)

// Target types
const (
	TypeLocal = "local"
	TypeIPv4  = "ipv4"
	TypeIPv6  = "ipv6"
	TypeFQDN  = "fqdn"
)

// Target represents a scan target: a local directory or a remote SMB host.
type Target struct {
	Type  string
	Value string
}

// IsLocal returns whether the target is a local directory.
func (t Target) IsLocal() bool {
	return t.Type == TypeLocal
}

// Options holds target loading options.
type Options struct {
	TargetsFile  string
	Targets      []string
	AuthDomain   string
	AuthDCIP     string
	AuthUser     string
	AuthPassword string
	UseLDAPS     bool
	Timeout      time.Duration
}

// LoadTargets loads and classifies targets from the configured sources:
// explicit values, a targets file, and Active Directory discovery when DC
// credentials are supplied and no explicit targets exist.
func LoadTargets(opts *Options, log logger.Interface) ([]Target, error) {
	var rawTargets []string

	if opts.TargetsFile != "" {
		log.Debug("Loading targets from file: " + opts.TargetsFile)
		fileTargets, err := loadFromFile(opts.TargetsFile)
		if err != nil {
			return nil, fmt.Errorf("error loading targets file: %w", err)
		}
		rawTargets = append(rawTargets, fileTargets...)
	}

	if len(opts.Targets) > 0 {
		log.Debug("Loading targets from CLI options")
		rawTargets = append(rawTargets, opts.Targets...)
	}

	if len(rawTargets) == 0 && hasDCCredentials(opts) {
		log.Info(fmt.Sprintf("No target list specified, fetching all computers from Active Directory domain '%s'", opts.AuthDomain))

		adTargets, err := loadFromActiveDirectory(opts, log)
		if err != nil {
			log.Error("Error loading targets from Active Directory: " + err.Error())
		} else {
			rawTargets = append(rawTargets, adTargets...)
		}
	}

	rawTargets = uniqueStrings(rawTargets)

	var finalTargets []Target
	for _, t := range rawTargets {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}

		finalTargets = append(finalTargets, classify(t, log)...)
	}

	return uniqueTargets(finalTargets), nil
}

// classify maps one raw target string to zero or more typed targets.
func classify(raw string, log logger.Interface) []Target {
	// Explicit local prefix wins over any network interpretation.
	if local, ok := strings.CutPrefix(raw, "local:"); ok {
		return []Target{{Type: TypeLocal, Value: local}}
	}

	// A path that exists as a directory is a local scan root.
	if info, err := os.Stat(raw); err == nil && info.IsDir() {
		return []Target{{Type: TypeLocal, Value: raw}}
	}

	if utils.IsIPv4CIDR(raw) {
		ips, err := utils.ExpandCIDR(raw)
		if err != nil {
			log.Debug("Error expanding CIDR " + raw + ": " + err.Error())
			return nil
		}
		targets := make([]Target, 0, len(ips))
		for _, ip := range ips {
			targets = append(targets, Target{Type: TypeIPv4, Value: ip})
		}
		return targets
	}
	if utils.IsIPv4Addr(raw) {
		return []Target{{Type: TypeIPv4, Value: raw}}
	}
	if utils.IsIPv6Addr(raw) {
		return []Target{{Type: TypeIPv6, Value: raw}}
	}
	if utils.IsFQDN(raw) {
		return []Target{{Type: TypeFQDN, Value: raw}}
	}

	log.Debug("Target '" + raw + "' was not added (unknown type)")
	return nil
}

// hasDCCredentials reports whether AD discovery is possible.
func hasDCCredentials(opts *Options) bool {
	return opts.AuthDCIP != "" && opts.AuthUser != "" && opts.AuthPassword != ""
}

// loadFromActiveDirectory loads computers and servers from AD.
func loadFromActiveDirectory(opts *Options, log logger.Interface) ([]string, error) {
	port := 389
	if opts.UseLDAPS {
		port = 636
	}
	if ok, _ := utils.IsPortOpen(opts.AuthDCIP, port, opts.Timeout); !ok {
		return nil, fmt.Errorf("domain controller %s is not reachable on port %d", opts.AuthDCIP, port)
	}

	client := ldap.NewClient(&ldap.ClientOptions{
		Domain:   opts.AuthDomain,
		DCIP:     opts.AuthDCIP,
		Username: opts.AuthUser,
		Password: opts.AuthPassword,
		UseLDAPS: opts.UseLDAPS,
	})

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to LDAP: %w", err)
	}
	defer client.Close()

	var targets []string

	computers, err := client.GetComputers()
	if err != nil {
		log.Warning("Error fetching computers: " + err.Error())
	} else {
		log.Info(fmt.Sprintf("Found %d computers in Active Directory", len(computers)))
		targets = append(targets, computers...)
	}

	servers, err := client.GetServers()
	if err != nil {
		log.Warning("Error fetching servers: " + err.Error())
	} else {
		log.Info(fmt.Sprintf("Found %d servers in Active Directory", len(servers)))
		targets = append(targets, servers...)
	}

	return targets, nil
}

// loadFromFile loads targets from a file, one per line. Blank lines and
// lines starting with '#' are skipped.
func loadFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var targets []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			targets = append(targets, line)
		}
	}

	return targets, scanner.Err()
}

// uniqueStrings returns unique strings sorted.
func uniqueStrings(input []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, s := range input {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	sort.Strings(result)
	return result
}

// uniqueTargets returns unique targets sorted by type then value.
func uniqueTargets(input []Target) []Target {
	seen := make(map[string]bool)
	var result []Target
	for _, t := range input {
		key := t.Type + ":" + t.Value
		if !seen[key] {
			seen[key] = true
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Type != result[j].Type {
			return result[i].Type < result[j].Type
		}
		return result[i].Value < result[j].Value
	})
	return result
}
