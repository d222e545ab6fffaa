package awsdir

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudhop/internal/domain"
)

const (
	clusterARN = "arn:aws:ecs:eu-west-1:123:cluster/prod"
	serviceARN = "arn:aws:ecs:eu-west-1:123:service/prod/api"
	taskARN    = "arn:aws:ecs:eu-west-1:123:task/prod/abc123"
)

type fakeECS struct {
	clusterPages [][]string
	lastServices *ecs.ListServicesInput
	lastTasks    *ecs.ListTasksInput
	tasks        []ecstypes.Task
	err          error
}

func (f *fakeECS) ListClusters(ctx context.Context, in *ecs.ListClustersInput, _ ...func(*ecs.Options)) (*ecs.ListClustersOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := 0
	if in.NextToken != nil {
		page = 1
	}
	out := &ecs.ListClustersOutput{ClusterArns: f.clusterPages[page]}
	if page+1 < len(f.clusterPages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func (f *fakeECS) ListServices(ctx context.Context, in *ecs.ListServicesInput, _ ...func(*ecs.Options)) (*ecs.ListServicesOutput, error) {
	f.lastServices = in
	return &ecs.ListServicesOutput{ServiceArns: []string{serviceARN}}, nil
}

func (f *fakeECS) ListTasks(ctx context.Context, in *ecs.ListTasksInput, _ ...func(*ecs.Options)) (*ecs.ListTasksOutput, error) {
	f.lastTasks = in
	return &ecs.ListTasksOutput{TaskArns: []string{taskARN}}, nil
}

func (f *fakeECS) DescribeTasks(ctx context.Context, in *ecs.DescribeTasksInput, _ ...func(*ecs.Options)) (*ecs.DescribeTasksOutput, error) {
	return &ecs.DescribeTasksOutput{Tasks: f.tasks}, nil
}

type fakeEC2 struct {
	instances []ec2types.Instance
	lastInput *ec2.DescribeInstancesInput
}

func (f *fakeEC2) DescribeInstances(ctx context.Context, in *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.lastInput = in
	return &ec2.DescribeInstancesOutput{
		Reservations: []ec2types.Reservation{{Instances: f.instances}},
	}, nil
}

func TestClustersFollowsPages(t *testing.T) {
	fake := &fakeECS{clusterPages: [][]string{{clusterARN}, {"arn:aws:ecs:eu-west-1:123:cluster/staging"}}}
	c := NewWithAPIs(fake, &fakeEC2{})

	items, err := c.Clusters(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "prod", items[0].Name)
	assert.Equal(t, clusterARN, items[0].ID)
	assert.Equal(t, "staging", items[1].Name)
}

func TestClustersWrapsErrors(t *testing.T) {
	boom := errors.New("access denied")
	c := NewWithAPIs(&fakeECS{err: boom}, &fakeEC2{})

	_, err := c.Clusters(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "list clusters")
}

func TestServicesAndTasksUseAncestors(t *testing.T) {
	fake := &fakeECS{}
	c := NewWithAPIs(fake, &fakeEC2{})
	cluster := domain.Resource{Name: "prod", ID: clusterARN}
	service := domain.Resource{Name: "api", ID: serviceARN}

	services, err := c.Services(context.Background(), domain.ResolvedPath{cluster})
	require.NoError(t, err)
	assert.Equal(t, clusterARN, aws.ToString(fake.lastServices.Cluster))
	assert.Equal(t, "api", services[0].Name)

	tasks, err := c.Tasks(context.Background(), domain.ResolvedPath{cluster, service})
	require.NoError(t, err)
	assert.Equal(t, clusterARN, aws.ToString(fake.lastTasks.Cluster))
	assert.Equal(t, "api", aws.ToString(fake.lastTasks.ServiceName))
	assert.Equal(t, "abc123", tasks[0].Name)
	assert.Equal(t, taskARN, tasks[0].ID)
}

func TestServicesWithoutClusterFails(t *testing.T) {
	c := NewWithAPIs(&fakeECS{}, &fakeEC2{})
	_, err := c.Services(context.Background(), nil)
	assert.ErrorContains(t, err, "missing ancestor")
}

func TestContainersCarryRuntimeID(t *testing.T) {
	fake := &fakeECS{tasks: []ecstypes.Task{{
		TaskArn: aws.String(taskARN),
		Containers: []ecstypes.Container{
			{Name: aws.String("app"), RuntimeId: aws.String("abc123-111")},
			{Name: aws.String("sidecar"), RuntimeId: aws.String("abc123-222")},
			{RuntimeId: aws.String("nameless")},
		},
	}}}
	c := NewWithAPIs(fake, &fakeEC2{})
	path := domain.ResolvedPath{
		{Name: "prod", ID: clusterARN},
		{Name: "api", ID: serviceARN},
		{Name: "abc123", ID: taskARN},
	}

	items, err := c.Containers(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Resource{
		{Name: "app", ID: "app", Aux: "abc123-111"},
		{Name: "sidecar", ID: "sidecar", Aux: "abc123-222"},
	}, items)
}

func TestInstancesUseNameTagAndSkipStopped(t *testing.T) {
	running := &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning}
	stopped := &ec2types.InstanceState{Name: ec2types.InstanceStateNameStopped}
	fake := &fakeEC2{instances: []ec2types.Instance{
		{InstanceId: aws.String("i-1"), State: running, Tags: []ec2types.Tag{{Key: aws.String("Name"), Value: aws.String("web")}}},
		{InstanceId: aws.String("i-2"), State: running},
		{InstanceId: aws.String("i-3"), State: stopped},
	}}
	c := NewWithAPIs(&fakeECS{}, fake)

	items, err := c.Instances(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.Resource{
		{Name: "web (i-1)", ID: "i-1"},
		{Name: "i-2 (i-2)", ID: "i-2"},
	}, items)
	require.Len(t, fake.lastInput.Filters, 1)
	assert.Equal(t, "instance-state-name", aws.ToString(fake.lastInput.Filters[0].Name))
}

func TestHierarchyByKind(t *testing.T) {
	c := NewWithAPIs(&fakeECS{}, &fakeEC2{})

	h, err := c.Hierarchy(domain.KindECS)
	require.NoError(t, err)
	assert.Equal(t, []string{"Clusters", "Services", "Tasks", "Containers"}, h.Titles())

	h, err = c.Hierarchy(domain.KindEC2)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Depth())

	_, err = c.Hierarchy("lambda")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}
