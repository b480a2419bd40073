// Package feature provisions devcontainer feature bundles.
//
// A bundle is a directory under the catalog's features/ root, copied
// wholesale into the generated .devcontainer/features/ tree. Provisioning is
// a full replace: the destination is removed before copying so stale files
// from a previous generation never survive. Bundle names are resolved with
// filepath-securejoin so a crafted name cannot escape the features root.
package feature
