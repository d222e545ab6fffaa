package awsdir

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"

	"cloudhop/internal/domain"
)

// Clusters lists every ECS cluster
func (c *Client) Clusters(ctx context.Context, _ domain.ResolvedPath) ([]domain.Resource, error) {
	var arns []string
	p := ecs.NewListClustersPaginator(c.ecs, &ecs.ListClustersInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list clusters: %w", err)
		}
		arns = append(arns, page.ClusterArns...)
	}
	return arnResources(arns), nil
}

// Services lists the services of the selected cluster
func (c *Client) Services(ctx context.Context, ancestors domain.ResolvedPath) ([]domain.Resource, error) {
	cluster, err := ancestor(ancestors, 0)
	if err != nil {
		return nil, err
	}
	var arns []string
	p := ecs.NewListServicesPaginator(c.ecs, &ecs.ListServicesInput{Cluster: str(cluster)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list services in %s: %w", domain.ArnName(cluster), err)
		}
		arns = append(arns, page.ServiceArns...)
	}
	return arnResources(arns), nil
}

// Tasks lists the running tasks of the selected service
func (c *Client) Tasks(ctx context.Context, ancestors domain.ResolvedPath) ([]domain.Resource, error) {
	cluster, err := ancestor(ancestors, 0)
	if err != nil {
		return nil, err
	}
	service, err := ancestor(ancestors, 1)
	if err != nil {
		return nil, err
	}
	var arns []string
	p := ecs.NewListTasksPaginator(c.ecs, &ecs.ListTasksInput{
		Cluster:     str(cluster),
		ServiceName: str(domain.ArnName(service)),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list tasks of %s: %w", domain.ArnName(service), err)
		}
		arns = append(arns, page.TaskArns...)
	}
	return arnResources(arns), nil
}

// Containers lists the containers of the selected task. The identifier is
// the container name (what execute-command expects) and Aux carries the
// runtime id needed for SSM port forwarding.
func (c *Client) Containers(ctx context.Context, ancestors domain.ResolvedPath) ([]domain.Resource, error) {
	cluster, err := ancestor(ancestors, 0)
	if err != nil {
		return nil, err
	}
	task, err := ancestor(ancestors, 2)
	if err != nil {
		return nil, err
	}
	out, err := c.ecs.DescribeTasks(ctx, &ecs.DescribeTasksInput{
		Cluster: str(cluster),
		Tasks:   []string{task},
	})
	if err != nil {
		return nil, fmt.Errorf("describe task %s: %w", domain.ArnName(task), err)
	}
	var items []domain.Resource
	for _, t := range out.Tasks {
		for _, ct := range t.Containers {
			name := aws.ToString(ct.Name)
			if name == "" {
				continue
			}
			items = append(items, domain.Resource{
				Name: name,
				ID:   name,
				Aux:  aws.ToString(ct.RuntimeId),
			})
		}
	}
	return items, nil
}
