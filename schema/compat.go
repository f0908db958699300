package schema

import (
	"github.com/Masterminds/semver/v3"

	"github.com/cqlls/cqlls/errors"
)

// MinimumVersionConstraint is the oldest cluster release the server supports.
// system_schema appeared in Cassandra 3.0; Scylla reports a compatible
// Cassandra version string, so one constraint covers both families.
const MinimumVersionConstraint = ">= 3.0.0"

// CheckVersion validates a cluster's release_version against the minimum
// supported constraint.
func CheckVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.Wrapf(err, "unparseable release_version %q", version)
	}

	constraint, err := semver.NewConstraint(MinimumVersionConstraint)
	if err != nil {
		return errors.Wrap(err, "invalid version constraint")
	}

	if !constraint.Check(v) {
		return errors.Newf("cluster reports %s, minimum supported is %s", version, MinimumVersionConstraint)
	}
	return nil
}
