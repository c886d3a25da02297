package descriptor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/phoenixveritas/vaultasg/internal/stack"
	"github.com/phoenixveritas/vaultasg/internal/util/naming"
	"github.com/phoenixveritas/vaultasg/internal/util/tags"
)

// Logical IDs of resources that hang off the network and group nodes.
var (
	internetGatewayID   = naming.Child(naming.NetworkID, "IGW")
	gatewayAttachmentID = naming.Child(naming.NetworkID, "VPCGW")
	securityGroupID     = naming.Child(naming.ScalingGroupID, "InstanceSecurityGroup")
	instanceProfileID   = naming.Child(naming.ScalingGroupID, "InstanceProfile")
	launchConfigID      = naming.Child(naming.ScalingGroupID, "LaunchConfig")
)

const (
	pathMetadataKey = "vaultasg:path"
	defaultUserData = "#!/bin/bash"
	anyIPv4         = "0.0.0.0/0"
)

// emitter renders graph nodes into template resources.
type emitter struct {
	g *stack.Graph
	t *Template
}

func newEmitter(g *stack.Graph) *emitter {
	return &emitter{
		g: g,
		t: &Template{
			AWSTemplateFormatVersion: FormatVersion,
			Description:              g.Description,
			Resources:                make(map[string]Resource),
			Outputs:                  make(map[string]Output),
		},
	}
}

func (e *emitter) path(parts ...string) string {
	return naming.Path(e.g.StackName, parts...)
}

func (e *emitter) tags(path string) *tags.TagBuilder {
	return tags.NewTagBuilder(e.g.StackName, e.g.Tags).WithName(path)
}

func (e *emitter) add(id, path string, r Resource) {
	r.Metadata = map[string]any{pathMetadataKey: path}
	e.t.Resources[id] = r
}

func (e *emitter) emitNetwork(n stack.Node) {
	path := e.path(n.ID)
	e.add(n.ID, path, Resource{
		Type: TypeVPC,
		Properties: map[string]any{
			"CidrBlock":          e.g.Network.CIDR,
			"EnableDnsHostnames": true,
			"EnableDnsSupport":   true,
			"InstanceTenancy":    "default",
			"Tags":               e.tags(path).Build(),
		},
	})

	if e.g.HasPublicSubnets() {
		e.add(internetGatewayID, e.path(n.ID, "IGW"), Resource{
			Type: TypeInternetGateway,
			Properties: map[string]any{
				"Tags": e.tags(path).Build(),
			},
		})
		e.add(gatewayAttachmentID, e.path(n.ID, "VPCGW"), Resource{
			Type: TypeGatewayAttachment,
			Properties: map[string]any{
				"VpcId":             ref(n.ID),
				"InternetGatewayId": ref(internetGatewayID),
			},
		})
	}

	e.t.Outputs["VpcId"] = Output{Description: "ID of the Vault network", Value: ref(n.ID)}
}

func (e *emitter) emitSubnet(n stack.Node) error {
	s, ok := e.g.Subnet(n.ID)
	if !ok {
		return fmt.Errorf("subnet node %q has no allocated subnet", n.ID)
	}

	vpcID := n.DependsOn[0]
	path := e.path(vpcID, strings.TrimPrefix(n.ID, vpcID))
	public := s.Visibility == stack.VisibilityPublic
	subnetID := naming.Child(n.ID, "Subnet")
	routeTableID := naming.Child(n.ID, "RouteTable")

	e.add(subnetID, e.path(vpcID, strings.TrimPrefix(n.ID, vpcID), "Subnet"), Resource{
		Type: TypeSubnet,
		Properties: map[string]any{
			"VpcId":               ref(vpcID),
			"CidrBlock":           s.CIDR,
			"AvailabilityZone":    selectAZ(s.AZ),
			"MapPublicIpOnLaunch": public,
			"Tags":                e.tags(path).WithSubnet(s.Name, subnetType(s.Visibility)).Build(),
		},
	})

	e.add(routeTableID, e.path(vpcID, strings.TrimPrefix(n.ID, vpcID), "RouteTable"), Resource{
		Type: TypeRouteTable,
		Properties: map[string]any{
			"VpcId": ref(vpcID),
			"Tags":  e.tags(path).Build(),
		},
	})

	e.add(naming.Child(n.ID, "RouteTableAssociation"), e.path(vpcID, strings.TrimPrefix(n.ID, vpcID), "RouteTableAssociation"), Resource{
		Type: TypeRouteTableAssociation,
		Properties: map[string]any{
			"RouteTableId": ref(routeTableID),
			"SubnetId":     ref(subnetID),
		},
	})

	if public {
		e.add(defaultRouteID(n.ID), e.path(vpcID, strings.TrimPrefix(n.ID, vpcID), "DefaultRoute"), Resource{
			Type: TypeRoute,
			Properties: map[string]any{
				"RouteTableId":         ref(routeTableID),
				"DestinationCidrBlock": anyIPv4,
				"GatewayId":            ref(internetGatewayID),
			},
			DependsOn: []string{gatewayAttachmentID},
		})
	}
	return nil
}

func (e *emitter) emitRole(n stack.Node) {
	path := e.path(n.ID)
	props := map[string]any{
		"AssumeRolePolicyDocument": map[string]any{
			"Version": "2012-10-17",
			"Statement": []any{
				map[string]any{
					"Action":    "sts:AssumeRole",
					"Effect":    "Allow",
					"Principal": map[string]any{"Service": e.g.Role.Principal},
				},
			},
		},
		"Tags": e.tags(path).Build(),
	}

	if len(e.g.Role.ManagedPolicies) > 0 {
		arns := make([]any, 0, len(e.g.Role.ManagedPolicies))
		for _, p := range e.g.Role.ManagedPolicies {
			arns = append(arns, policyARN(p))
		}
		props["ManagedPolicyArns"] = arns
	}

	e.add(n.ID, path, Resource{Type: TypeRole, Properties: props})
	e.t.Outputs["InstanceRoleArn"] = Output{Description: "ARN of the instance role", Value: getAtt(n.ID, "Arn")}
}

func (e *emitter) emitScalingGroup(n stack.Node) error {
	var roleID, vpcID string
	var subnets []stack.Subnet
	for _, dep := range n.DependsOn {
		node, _ := e.g.Node(dep)
		switch node.Kind {
		case stack.KindRole:
			roleID = dep
		case stack.KindNetwork:
			vpcID = dep
		case stack.KindSubnet:
			s, _ := e.g.Subnet(dep)
			subnets = append(subnets, s)
		}
	}
	if roleID == "" || vpcID == "" || len(subnets) == 0 {
		return fmt.Errorf("scaling group %q is missing its role, network or subnets", n.ID)
	}

	path := e.path(n.ID)
	c := e.g.Compute

	e.add(securityGroupID, e.path(n.ID, "InstanceSecurityGroup"), Resource{
		Type: TypeSecurityGroup,
		Properties: map[string]any{
			"GroupDescription": e.path(n.ID, "InstanceSecurityGroup"),
			"SecurityGroupEgress": []any{
				map[string]any{
					"CidrIp":      anyIPv4,
					"Description": "Allow all outbound traffic by default",
					"IpProtocol":  "-1",
				},
			},
			"VpcId": ref(vpcID),
			"Tags":  e.tags(path).Build(),
		},
	})

	e.add(instanceProfileID, e.path(n.ID, "InstanceProfile"), Resource{
		Type: TypeInstanceProfile,
		Properties: map[string]any{
			"Roles": []any{ref(roleID)},
		},
	})

	launch := map[string]any{
		"ImageId":            e.imageID(),
		"InstanceType":       c.InstanceType,
		"IamInstanceProfile": ref(instanceProfileID),
		"SecurityGroups":     []any{getAtt(securityGroupID, "GroupId")},
		"UserData":           base64(defaultUserData),
	}
	if c.AssociatePublicIP {
		launch["AssociatePublicIpAddress"] = true
	}
	e.add(launchConfigID, e.path(n.ID, "LaunchConfig"), Resource{
		Type:       TypeLaunchConfiguration,
		Properties: launch,
		DependsOn:  []string{roleID},
	})

	zones := make([]any, 0, len(subnets))
	var routes []string
	for _, s := range subnets {
		zones = append(zones, ref(naming.Child(s.ID, "Subnet")))
		if s.Visibility == stack.VisibilityPublic {
			routes = append(routes, defaultRouteID(s.ID))
		}
	}
	sort.Strings(routes)

	e.add(n.ID, path, Resource{
		Type: TypeAutoScalingGroup,
		Properties: map[string]any{
			"MinSize":                 strconv.Itoa(c.MinCapacity),
			"MaxSize":                 strconv.Itoa(c.MaxCapacity),
			"DesiredCapacity":         strconv.Itoa(c.DesiredCapacity),
			"LaunchConfigurationName": ref(launchConfigID),
			"VPCZoneIdentifier":       zones,
			"Tags":                    e.tags(path).BuildGroup(),
		},
		DependsOn: routes,
		UpdatePolicy: map[string]any{
			"AutoScalingScheduledAction": map[string]any{
				"IgnoreUnmodifiedGroupSizeProperties": true,
			},
		},
	})

	e.t.Outputs["ScalingGroupName"] = Output{Description: "Name of the Vault auto-scaling group", Value: ref(n.ID)}
	return nil
}

func (e *emitter) emitScalingPolicy(n stack.Node) {
	steps := e.g.Scaling.Steps
	adjustments := make([]any, 0, len(steps))
	for i, s := range steps {
		step := map[string]any{
			"MetricIntervalLowerBound": s.LowerBound,
			"ScalingAdjustment":        s.Adjustment,
		}
		if i+1 < len(steps) {
			step["MetricIntervalUpperBound"] = steps[i+1].LowerBound
		}
		adjustments = append(adjustments, step)
	}

	e.add(n.ID, e.path(naming.ScalingGroupID, strings.TrimPrefix(n.ID, naming.ScalingGroupID)), Resource{
		Type: TypeScalingPolicy,
		Properties: map[string]any{
			"AutoScalingGroupName": ref(n.DependsOn[0]),
			"PolicyType":           "StepScaling",
			"AdjustmentType":       adjustmentType(e.g.Scaling.AdjustmentType),
			"StepAdjustments":      adjustments,
		},
	})
}

// imageID returns a literal image ID for a pinned region and a mapping
// lookup on the deploy region otherwise.
func (e *emitter) imageID() any {
	images := e.g.Compute.Images
	if e.g.Env.Region != "" {
		return images[e.g.Env.Region]
	}

	mapping := make(map[string]map[string]string, len(images))
	for region, id := range images {
		mapping[region] = map[string]string{"ami": id}
	}
	e.t.Mappings = map[string]map[string]map[string]string{naming.ImageMapping(): mapping}
	return findInMap(naming.ImageMapping(), ref("AWS::Region"), "ami")
}

func defaultRouteID(subnetNodeID string) string {
	return naming.Child(subnetNodeID, "DefaultRoute")
}

func subnetType(v stack.Visibility) string {
	if v == stack.VisibilityPublic {
		return "Public"
	}
	return "Isolated"
}

// policyARN expands a managed policy name into an AWS-managed policy ARN in
// the deploy partition. Full ARNs pass through.
func policyARN(p string) any {
	if strings.HasPrefix(p, "arn:") {
		return p
	}
	return join("arn:", ref("AWS::Partition"), ":iam::aws:policy/", p)
}

func adjustmentType(a stack.AdjustmentType) string {
	switch a {
	case stack.AdjustmentChangeInCapacity:
		return "ChangeInCapacity"
	case stack.AdjustmentPercentChangeInCapacity:
		return "PercentChangeInCapacity"
	default:
		return "ExactCapacity"
	}
}
