package aws

import (
	"context"
	"fmt"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// EC2Repository implements repository.InstanceRepository.
type EC2Repository struct {
	client ec2.DescribeInstancesAPIClient
}

// NewEC2Repository wraps an EC2 client.
func NewEC2Repository(client ec2.DescribeInstancesAPIClient) *EC2Repository {
	return &EC2Repository{client: client}
}

// ListTaggedInstances returns running or pending instances carrying tagKey=tagValue.
func (r *EC2Repository) ListTaggedInstances(ctx context.Context, tagKey, tagValue string) ([]entity.TaggedInstance, error) {
	paginator := ec2.NewDescribeInstancesPaginator(r.client, &ec2.DescribeInstancesInput{
		Filters: []ec2Types.Filter{
			{Name: aws.String("tag:" + tagKey), Values: []string{tagValue}},
			{Name: aws.String("instance-state-name"), Values: []string{"pending", "running"}},
		},
	})

	var instances []entity.TaggedInstance
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error describing instances tagged %s=%s: %w", tagKey, tagValue, err)
		}
		for _, reservation := range output.Reservations {
			for _, instance := range reservation.Instances {
				ti := entity.TaggedInstance{InstanceID: aws.ToString(instance.InstanceId)}
				if instance.State != nil {
					ti.State = string(instance.State.Name)
				}
				for _, tag := range instance.Tags {
					if aws.ToString(tag.Key) == "Name" {
						ti.Name = aws.ToString(tag.Value)
					}
				}
				instances = append(instances, ti)
			}
		}
	}
	return instances, nil
}
