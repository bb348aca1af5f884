package graft

// Version is the graft release. Builds may override it with -ldflags "-X github.com/aretw0/graft.Version=...".
var Version = "0.1.0"
