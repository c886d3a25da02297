package descriptor

// FormatVersion is the template format version the external engine expects.
const FormatVersion = "2010-09-09"

// Template is a CloudFormation-shaped stack template. Maps are rendered with
// sorted keys, so equal templates marshal to equal bytes.
type Template struct {
	AWSTemplateFormatVersion string                                  `json:"AWSTemplateFormatVersion"`
	Description              string                                  `json:"Description,omitempty"`
	Mappings                 map[string]map[string]map[string]string `json:"Mappings,omitempty"`
	Resources                map[string]Resource                     `json:"Resources"`
	Outputs                  map[string]Output                       `json:"Outputs,omitempty"`
}

// Resource is one typed resource declaration.
type Resource struct {
	Type         string         `json:"Type"`
	Properties   map[string]any `json:"Properties,omitempty"`
	DependsOn    []string       `json:"DependsOn,omitempty"`
	UpdatePolicy map[string]any `json:"UpdatePolicy,omitempty"`
	Metadata     map[string]any `json:"Metadata,omitempty"`
}

// Output is a stack output.
type Output struct {
	Description string `json:"Description,omitempty"`
	Value       any    `json:"Value"`
}

// Resource types emitted for the stack.
const (
	TypeVPC                   = "AWS::EC2::VPC"
	TypeSubnet                = "AWS::EC2::Subnet"
	TypeRouteTable            = "AWS::EC2::RouteTable"
	TypeRouteTableAssociation = "AWS::EC2::SubnetRouteTableAssociation"
	TypeRoute                 = "AWS::EC2::Route"
	TypeInternetGateway       = "AWS::EC2::InternetGateway"
	TypeGatewayAttachment     = "AWS::EC2::VPCGatewayAttachment"
	TypeSecurityGroup         = "AWS::EC2::SecurityGroup"
	TypeRole                  = "AWS::IAM::Role"
	TypeInstanceProfile       = "AWS::IAM::InstanceProfile"
	TypeLaunchConfiguration   = "AWS::AutoScaling::LaunchConfiguration"
	TypeAutoScalingGroup      = "AWS::AutoScaling::AutoScalingGroup"
	TypeScalingPolicy         = "AWS::AutoScaling::ScalingPolicy"
)

func ref(id string) map[string]any {
	return map[string]any{"Ref": id}
}

func getAtt(id, attr string) map[string]any {
	return map[string]any{"Fn::GetAtt": []string{id, attr}}
}

func findInMap(mapping, key, attr any) map[string]any {
	return map[string]any{"Fn::FindInMap": []any{mapping, key, attr}}
}

func join(parts ...any) map[string]any {
	return map[string]any{"Fn::Join": []any{"", parts}}
}

func selectAZ(index int) map[string]any {
	return map[string]any{"Fn::Select": []any{index, map[string]any{"Fn::GetAZs": ""}}}
}

func base64(s string) map[string]any {
	return map[string]any{"Fn::Base64": s}
}
