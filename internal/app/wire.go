package app

import (
	"context"
	"fmt"

	"employee-directory/internal/config"
	"employee-directory/internal/directory"
	"employee-directory/internal/logging"
	"employee-directory/internal/permission"
	"employee-directory/internal/providers/pos"
	"employee-directory/internal/session"
	"employee-directory/internal/sink"
)

// Destinations picks where exports go besides the local export directory.
type Destinations struct {
	SFTP bool
	S3   bool
}

// IdentityFromConfig decodes the session token and applies explicit values.
func IdentityFromConfig(cfg config.Config) session.Identity {
	return session.Resolve(cfg.Session.Token, cfg.Session.Role, cfg.Session.EmployeeTag, cfg.Session.UserName)
}

// GateFromConfig loads the policy file. Without one every capability is
// denied.
func GateFromConfig(cfg config.Config) (permission.Gate, error) {
	if cfg.Directory.PolicyFile == "" {
		return permission.DenyAll, nil
	}
	p, err := permission.LoadPolicy(cfg.Directory.PolicyFile)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func ClientFromConfig(cfg config.Config) *pos.Client {
	return pos.New(cfg.Directory.BaseURL,
		pos.WithPaths(cfg.Directory.ListPath, cfg.Directory.UpdatePath),
		pos.WithTimeout(cfg.Directory.RequestTimeout),
	)
}

func SinkFromConfig(ctx context.Context, cfg config.Config, dest Destinations) (sink.Sink, error) {
	out := sink.Multi{sink.Local{Dir: cfg.Directory.ExportDir}}

	if dest.SFTP {
		s, err := sink.NewSFTP(sink.SFTPConfig{
			Host:                  cfg.SFTP.Host,
			Port:                  cfg.SFTP.Port,
			User:                  cfg.SFTP.User,
			Pass:                  cfg.SFTP.Pass,
			RemoteDir:             cfg.SFTP.Dir,
			KnownHostsFile:        cfg.SFTP.KnownHosts,
			InsecureIgnoreHostKey: cfg.SFTP.InsecureIgnoreHostKey,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	if dest.S3 {
		s, err := sink.NewS3(ctx, sink.S3Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			Prefix:          cfg.S3.Prefix,
			PathStyle:       cfg.S3.PathStyle,
			AccessKeyID:     cfg.S3.AccessKey,
			SecretAccessKey: cfg.S3.SecretKey,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	if len(out) == 1 {
		return out[0], nil
	}
	return out, nil
}

// Open builds a Directory for the configured session.
func Open(ctx context.Context, cfg config.Config, dest Destinations, log logging.Logger) (*Directory, error) {
	gate, err := GateFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	out, err := SinkFromConfig(ctx, cfg, dest)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	id := IdentityFromConfig(cfg)
	store := directory.NewStore(id, ClientFromConfig(cfg), log, directory.WithTimeout(cfg.Directory.RequestTimeout))
	return New(store, gate, out, log), nil
}
