// Package meta loads declarative configuration documents from any location
// supported by the afs virtual file system (local files, embedded file
// systems, s3://, gs://, http:// and so on).  Documents are YAML; ${env.KEY}
// expressions inside them are expanded from the process environment before
// decoding.
package meta
