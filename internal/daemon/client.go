package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
)

// Implements [Access] against a Docker-compatible daemon over the Engine API.
type Client struct {
	api *client.Client // Engine API client.
}

// Connects to the daemon.
//
// An empty host uses the standard environment configuration (DOCKER_HOST and
// friends); a non-empty host overrides it. The API version is negotiated with
// the daemon so the client works across daemon releases.
func New(host string) (*Client, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	api, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to daemon: %w", err)
	}

	return &Client{api: api}, nil
}

// Closes the daemon connection.
func (c *Client) Close() error {
	return c.api.Close()
}

// Pulls an image, streaming progress at debug level until the daemon reports
// completion or an error.
func (c *Client) Pull(ctx context.Context, ref, encodedAuth, platform string) error {
	body, err := c.api.ImagePull(ctx, ref, image.PullOptions{
		RegistryAuth: encodedAuth,
		Platform:     platform,
	})
	if err != nil {
		return &OperationError{Op: "pull", Ref: ref, Err: err}
	}
	defer body.Close()

	if err := drainStream(body, nil); err != nil {
		return &OperationError{Op: "pull", Ref: ref, Err: err}
	}
	return nil
}

// Builds an image from the archive at archivePath and tags it with name.
//
// The identifier of the new image is taken from the builder's aux message;
// when the daemon does not send one, the name is inspected after the build
// completes.
func (c *Client) Build(ctx context.Context, name, archivePath string, opts BuildOptions) (string, error) {
	archive, err := os.Open(archivePath)
	if err != nil {
		return "", &OperationError{Op: "build", Ref: name, Err: err}
	}
	defer archive.Close()

	resp, err := c.api.ImageBuild(ctx, archive, build.ImageBuildOptions{
		Tags:        []string{name},
		Dockerfile:  opts.Dockerfile,
		NoCache:     opts.NoCache,
		Remove:      true,
		ForceRemove: opts.ForceRemove,
		BuildArgs:   buildArgs(opts.Args),
		Platform:    opts.Platform,
		NetworkMode: opts.Network,
		Target:      opts.Target,
		Labels:      opts.Labels,
		CacheFrom:   opts.CacheFrom,
	})
	if err != nil {
		return "", &OperationError{Op: "build", Ref: name, Err: err}
	}
	defer resp.Body.Close()

	var id string
	err = drainStream(resp.Body, func(raw json.RawMessage) {
		var result build.Result
		if json.Unmarshal(raw, &result) == nil && result.ID != "" {
			id = result.ID
		}
	})
	if err != nil {
		return "", &OperationError{Op: "build", Ref: name, Err: err}
	}

	if id == "" {
		if id, err = c.InspectID(ctx, name); err != nil {
			return "", err
		}
	}
	if id == "" {
		return "", &OperationError{Op: "build", Ref: name, Err: errMissingID}
	}

	slog.Debug("image built", "name", name, "id", id)
	return id, nil
}

// Loads the images contained in an archive into the daemon.
func (c *Client) Load(ctx context.Context, archivePath string) error {
	archive, err := os.Open(archivePath)
	if err != nil {
		return &OperationError{Op: "load", Ref: archivePath, Err: err}
	}
	defer archive.Close()

	resp, err := c.api.ImageLoad(ctx, archive, client.ImageLoadWithQuiet(true))
	if err != nil {
		return &OperationError{Op: "load", Ref: archivePath, Err: err}
	}
	defer resp.Body.Close()

	if err := drainStream(resp.Body, nil); err != nil {
		return &OperationError{Op: "load", Ref: archivePath, Err: err}
	}
	return nil
}

// Tags the source image under an additional target name.
func (c *Client) Tag(ctx context.Context, source, target string) error {
	if err := c.api.ImageTag(ctx, source, target); err != nil {
		return &OperationError{Op: "tag", Ref: source, Err: err}
	}
	return nil
}

// Removes an image by identifier or reference.
func (c *Client) Remove(ctx context.Context, id string, force bool) error {
	_, err := c.api.ImageRemove(ctx, id, image.RemoveOptions{Force: force})
	if err != nil {
		return &OperationError{Op: "remove", Ref: id, Err: err}
	}
	return nil
}

// Returns the identifier an image name currently resolves to, or the empty
// string when the daemon does not know the name.
func (c *Client) InspectID(ctx context.Context, name string) (string, error) {
	inspect, err := c.api.ImageInspect(ctx, name)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return "", nil
		}
		return "", &OperationError{Op: "inspect", Ref: name, Err: err}
	}
	return inspect.ID, nil
}

// Converts build arguments to the pointer-valued form the Engine API uses to
// distinguish empty values from absent ones.
func buildArgs(args map[string]string) map[string]*string {
	if len(args) == 0 {
		return nil
	}

	out := make(map[string]*string, len(args))
	for k, v := range args {
		out[k] = &v
	}
	return out
}
