package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/cqlls/cqlls/errors"
)

// ClusterProfile is a named set of connection parameters from clusters.toml.
// Profiles let one editor setup talk to several clusters without rewriting
// the main config:
//
//	[clusters.local]
//	url = "127.0.0.1:9042"
//	username = "cassandra"
//	password = "cassandra"
//
//	[clusters.staging]
//	url = "scylla.staging.internal:9042"
//	username = "lsp_ro"
//	password = "..."
//	timeout_seconds = 5
type ClusterProfile struct {
	// URL is the host:port of a contact point
	URL string `toml:"url"`

	// Username for cluster authentication
	Username string `toml:"username"`

	// Password for cluster authentication
	Password string `toml:"password"`

	// TimeoutSeconds overrides the connection timeout; 0 keeps the configured default
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// clustersFile is the on-disk shape of clusters.toml
type clustersFile struct {
	Clusters map[string]ClusterProfile `toml:"clusters"`
}

// ClustersPath returns the cluster profile manifest path (~/.config/cqlls/clusters.toml)
func ClustersPath() string {
	userDir := UserConfigDir()
	if userDir == "" {
		return ""
	}
	return filepath.Join(userDir, "clusters.toml")
}

// LoadClusterProfiles reads all named profiles from clusters.toml.
// A missing manifest is not an error; it yields an empty map.
func LoadClusterProfiles() (map[string]ClusterProfile, error) {
	path := ClustersPath()
	if path == "" {
		return map[string]ClusterProfile{}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]ClusterProfile{}, nil
	}

	var manifest clustersFile
	if _, err := toml.DecodeFile(path, &manifest); err != nil {
		return nil, errors.Wrapf(err, "failed to parse cluster manifest %s", path)
	}
	if manifest.Clusters == nil {
		manifest.Clusters = map[string]ClusterProfile{}
	}
	return manifest.Clusters, nil
}

// ApplyClusterProfile overlays the named profile onto the database section.
// Called when --cluster or database.cluster selects a profile.
func ApplyClusterProfile(cfg *Config, name string) error {
	profiles, err := LoadClusterProfiles()
	if err != nil {
		return err
	}

	profile, ok := profiles[name]
	if !ok {
		return errors.Newf("unknown cluster profile %q (defined in %s)", name, ClustersPath())
	}

	if profile.URL != "" {
		cfg.Database.URL = profile.URL
	}
	if profile.Username != "" {
		cfg.Database.Username = profile.Username
	}
	if profile.Password != "" {
		cfg.Database.Password = profile.Password
	}
	if profile.TimeoutSeconds > 0 {
		cfg.Database.TimeoutSeconds = profile.TimeoutSeconds
	}
	cfg.Database.Cluster = name

	return nil
}
