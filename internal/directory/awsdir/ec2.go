package awsdir

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"cloudhop/internal/domain"
)

// Instances lists running EC2 instances, displayed as "Name (instance-id)"
func (c *Client) Instances(ctx context.Context, _ domain.ResolvedPath) ([]domain.Resource, error) {
	in := &ec2.DescribeInstancesInput{
		Filters: []types.Filter{{
			Name:   str("instance-state-name"),
			Values: []string{string(types.InstanceStateNameRunning)},
		}},
	}
	var items []domain.Resource
	p := ec2.NewDescribeInstancesPaginator(c.ec2, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe instances: %w", err)
		}
		for _, res := range page.Reservations {
			for _, inst := range res.Instances {
				if inst.State != nil && inst.State.Name != types.InstanceStateNameRunning {
					continue
				}
				id := aws.ToString(inst.InstanceId)
				if id == "" {
					continue
				}
				items = append(items, domain.Resource{
					Name: fmt.Sprintf("%s (%s)", instanceName(inst.Tags, id), id),
					ID:   id,
				})
			}
		}
	}
	return items, nil
}

func instanceName(tags []types.Tag, fallback string) string {
	for _, t := range tags {
		if aws.ToString(t.Key) == "Name" && aws.ToString(t.Value) != "" {
			return aws.ToString(t.Value)
		}
	}
	return fallback
}
