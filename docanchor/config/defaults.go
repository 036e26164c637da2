package config

import (
	"github.com/LumeraProtocol/docanchor/pkg/anchor"
	"github.com/LumeraProtocol/docanchor/pkg/digest"
	"github.com/LumeraProtocol/docanchor/pkg/ledger"
)

// Centralized default values for configuration
const (
	DefaultRPCURL            = anchor.DefaultRPCURL
	DefaultNetwork           = anchor.DefaultNetwork
	DefaultExplorerBaseURL   = anchor.DefaultExplorerBaseURL
	DefaultConfirmTimeout    = ledger.DefaultConfirmTimeout
	DefaultRequestsPerSecond = ledger.DefaultRequestsPerSecond
	DefaultAlgorithm         = string(digest.SHA256)
	DefaultLogLevel          = "info"
)
