package entity

// TaggedInstance is an EC2 instance in scope of the remediation tag.
type TaggedInstance struct {
	InstanceID string `json:"instance_id"`
	State      string `json:"state"`
	Name       string `json:"name,omitempty"`
}

// RemediationParams are the inputs handed to the stop automation.
type RemediationParams struct {
	AssumeRoleARN string `json:"assume_role_arn"`
	TagKey        string `json:"tag_key"`
	TagValue      string `json:"tag_value"`
}

// RemediationResult is returned by the remediation handler.
type RemediationResult struct {
	OK                    bool     `json:"ok"`
	AutomationExecutionID string   `json:"automation_execution_id"`
	DocumentName          string   `json:"document_name"`
	TargetedInstances     []string `json:"targeted_instances,omitempty"`
}
