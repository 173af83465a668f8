package types

import "errors"

var (
	ErrMissingClientID = errors.New("a client ID is required; pass --client-id or set CLIENT_ID")
	ErrMissingTenantID = errors.New("a tenant ID is required; pass --tenant-id or set TENANT_ID")
)
