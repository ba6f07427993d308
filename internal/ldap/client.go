// Package ldap provides the Active Directory queries used to discover scan targets.
package ldap

import (
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"
)

// Default page size for LDAP paging (AD default MaxPageSize is 1000)
const defaultPageSize = 1000

// Client represents an LDAP client for Active Directory.
type Client struct {
	conn     *ldap.Conn
	baseDN   string
	domain   string
	dcIP     string
	username string
	password string
	useLDAPS bool
}

// ClientOptions holds options for creating an LDAP client.
type ClientOptions struct {
	Domain   string
	DCIP     string
	Username string
	Password string
	UseLDAPS bool
}

// NewClient creates a new LDAP client.
func NewClient(opts *ClientOptions) *Client {
	return &Client{
		domain:   opts.Domain,
		dcIP:     opts.DCIP,
		username: opts.Username,
		password: opts.Password,
		useLDAPS: opts.UseLDAPS,
		baseDN:   domainToBaseDN(opts.Domain),
	}
}

// Connect establishes connection to the LDAP server and binds.
func (c *Client) Connect() error {
	var err error
	var conn *ldap.Conn

	if c.useLDAPS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
		}
		conn, err = ldap.DialTLS("tcp", fmt.Sprintf("%s:636", c.dcIP), tlsConfig)
	} else {
		conn, err = ldap.Dial("tcp", fmt.Sprintf("%s:389", c.dcIP))
	}

	if err != nil {
		return fmt.Errorf("failed to connect to LDAP server: %w", err)
	}

	c.conn = conn

	bindDN := fmt.Sprintf("%s@%s", c.username, c.domain)
	if err := c.conn.Bind(bindDN, c.password); err != nil {
		c.conn.Close()
		return fmt.Errorf("failed to bind to LDAP server: %w", err)
	}

	return nil
}

// Close closes the LDAP connection.
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// GetComputers retrieves all computer objects from AD using paging.
func (c *Client) GetComputers() ([]string, error) {
	return c.searchHostnames("(&(objectCategory=computer)(objectClass=computer))")
}

// GetServers retrieves server objects from AD (computers with "server" in OS).
func (c *Client) GetServers() ([]string, error) {
	return c.searchHostnames("(&(objectCategory=computer)(objectClass=computer)(operatingSystem=*server*))")
}

// searchHostnames runs a paged search and collects hostnames, preferring
// dNSHostName over name.
func (c *Client) searchHostnames(ldapFilter string) ([]string, error) {
	searchRequest := ldap.NewSearchRequest(
		c.baseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		ldapFilter,
		[]string{"dNSHostName", "name"},
		nil,
	)

	sr, err := c.conn.SearchWithPaging(searchRequest, defaultPageSize)
	if err != nil {
		return nil, fmt.Errorf("LDAP search failed: %w", err)
	}

	var hosts []string
	for _, entry := range sr.Entries {
		dnsName := entry.GetAttributeValue("dNSHostName")
		if dnsName != "" {
			hosts = append(hosts, dnsName)
			continue
		}
		if name := entry.GetAttributeValue("name"); name != "" {
			hosts = append(hosts, name)
		}
	}

	return hosts, nil
}

// domainToBaseDN converts a domain name to LDAP base DN.
// e.g., "corp.local" -> "DC=corp,DC=local"
func domainToBaseDN(domain string) string {
	parts := strings.Split(domain, ".")
	var dnParts []string
	for _, part := range parts {
		dnParts = append(dnParts, "DC="+part)
	}
	return strings.Join(dnParts, ",")
}
