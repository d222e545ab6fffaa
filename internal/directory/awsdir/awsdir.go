// Package awsdir lists ECS and EC2 resources for the navigator using the AWS SDK.
package awsdir

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecs"

	"cloudhop/internal/directory"
	"cloudhop/internal/domain"
)

// ECSAPI is the subset of the ECS client used here
type ECSAPI interface {
	ListClusters(ctx context.Context, in *ecs.ListClustersInput, optFns ...func(*ecs.Options)) (*ecs.ListClustersOutput, error)
	ListServices(ctx context.Context, in *ecs.ListServicesInput, optFns ...func(*ecs.Options)) (*ecs.ListServicesOutput, error)
	ListTasks(ctx context.Context, in *ecs.ListTasksInput, optFns ...func(*ecs.Options)) (*ecs.ListTasksOutput, error)
	DescribeTasks(ctx context.Context, in *ecs.DescribeTasksInput, optFns ...func(*ecs.Options)) (*ecs.DescribeTasksOutput, error)
}

// EC2API is the subset of the EC2 client used here
type EC2API interface {
	DescribeInstances(ctx context.Context, in *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// Client lists resources from AWS
type Client struct {
	ecs ECSAPI
	ec2 EC2API
}

// Options select the AWS credentials and region. Empty fields fall back to
// the SDK's default chain (environment, shared config, instance role).
type Options struct {
	Region  string
	Profile string
}

// New loads the AWS configuration and builds ECS and EC2 clients
func New(ctx context.Context, opts Options) (*Client, error) {
	var loaders []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loaders = append(loaders, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loaders = append(loaders, awsconfig.WithSharedConfigProfile(opts.Profile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithAPIs(ecs.NewFromConfig(cfg), ec2.NewFromConfig(cfg)), nil
}

// NewWithAPIs builds a client around existing API implementations
func NewWithAPIs(ecsAPI ECSAPI, ec2API EC2API) *Client {
	return &Client{ecs: ecsAPI, ec2: ec2API}
}

// Kinds returns the resource kinds this client can navigate
func Kinds() []string {
	return []string{domain.KindECS, domain.KindEC2}
}

// Hierarchy returns the level definitions for kind
func (c *Client) Hierarchy(kind string) (directory.Hierarchy, error) {
	switch kind {
	case domain.KindECS:
		return directory.Hierarchy{
			Kind: domain.KindECS,
			Levels: []directory.LevelSpec{
				{Title: "Clusters", Fetch: c.Clusters},
				{Title: "Services", Fetch: c.Services},
				{Title: "Tasks", Fetch: c.Tasks},
				{Title: "Containers", Fetch: c.Containers},
			},
		}, nil
	case domain.KindEC2:
		return directory.Hierarchy{
			Kind: domain.KindEC2,
			Levels: []directory.LevelSpec{
				{Title: "Instances", Fetch: c.Instances},
			},
		}, nil
	}
	return directory.Hierarchy{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
}

func arnResources(arns []string) []domain.Resource {
	out := make([]domain.Resource, 0, len(arns))
	for _, arn := range arns {
		out = append(out, domain.Resource{Name: domain.ArnName(arn), ID: arn})
	}
	return out
}

func ancestor(ancestors domain.ResolvedPath, depth int) (string, error) {
	r, ok := ancestors.At(depth)
	if !ok {
		return "", fmt.Errorf("missing ancestor at depth %d", depth)
	}
	return r.ID, nil
}

var str = aws.String
