package deploy

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// Manifest is the decoded deployment declaration. One file describes every
// resource the serverless movies stack needs; nothing here talks to a cloud
// API.
type Manifest struct {
	Project         *Project                `hcl:"project,block"`
	ResourceGroups  []*ResourceGroup        `hcl:"resource_group,block"`
	SecurityGroups  []*NetworkSecurityGroup `hcl:"network_security_group,block"`
	VirtualNetworks []*VirtualNetwork       `hcl:"virtual_network,block"`
	PublicIPs       []*PublicIP             `hcl:"public_ip,block"`
	VirtualMachines []*VirtualMachine       `hcl:"virtual_machine,block"`
	LoadBalancers   []*LoadBalancer         `hcl:"load_balancer,block"`
	CosmosAccounts  []*CosmosAccount        `hcl:"cosmos_account,block"`
	StorageAccounts []*StorageAccount       `hcl:"storage_account,block"`
	ServicePlans    []*AppServicePlan       `hcl:"app_service_plan,block"`
	Insights        []*AppInsights          `hcl:"app_insights,block"`
	FunctionApps    []*FunctionApp          `hcl:"function_app,block"`
}

type Project struct {
	Name     string `hcl:"name,label"`
	Location string `hcl:"location"`
}

type ResourceGroup struct {
	Name     string `hcl:"name,label"`
	Location string `hcl:"location,optional"`
}

type CosmosAccount struct {
	Name          string          `hcl:"name,label"`
	ResourceGroup string          `hcl:"resource_group"`
	Kind          string          `hcl:"kind,optional"`
	Consistency   string          `hcl:"consistency,optional"`
	Database      *CosmosDatabase `hcl:"database,block"`
}

type CosmosDatabase struct {
	Name      string           `hcl:"name"`
	Container *CosmosContainer `hcl:"container,block"`
}

type CosmosContainer struct {
	Name         string `hcl:"name"`
	PartitionKey string `hcl:"partition_key"`
}

type NetworkSecurityGroup struct {
	Name          string          `hcl:"name,label"`
	ResourceGroup string          `hcl:"resource_group"`
	Rules         []*SecurityRule `hcl:"rule,block"`
}

type SecurityRule struct {
	Name            string `hcl:"name,label"`
	Protocol        string `hcl:"protocol,optional"`
	DestinationPort string `hcl:"destination_port"`
	Priority        int    `hcl:"priority"`
	Direction       string `hcl:"direction,optional"`
	Access          string `hcl:"access,optional"`
}

type VirtualNetwork struct {
	Name          string    `hcl:"name,label"`
	ResourceGroup string    `hcl:"resource_group"`
	AddressSpace  string    `hcl:"address_space,optional"`
	Subnets       []*Subnet `hcl:"subnet,block"`
}

type Subnet struct {
	Name          string `hcl:"name,label"`
	AddressPrefix string `hcl:"address_prefix,optional"`
	SecurityGroup string `hcl:"security_group,optional"`
}

type PublicIP struct {
	Name          string `hcl:"name,label"`
	ResourceGroup string `hcl:"resource_group"`
	Sku           string `hcl:"sku,optional"`
	Allocation    string `hcl:"allocation,optional"`
}

// VirtualMachine declares one or more identically shaped servers. Count above
// one suffixes the name with the instance number, the way a scaled web tier is
// provisioned.
type VirtualMachine struct {
	Name           string `hcl:"name,label"`
	ResourceGroup  string `hcl:"resource_group"`
	VirtualNetwork string `hcl:"virtual_network"`
	Subnet         string `hcl:"subnet"`
	Role           string `hcl:"role,optional"`
	Size           string `hcl:"size,optional"`
	Count          int    `hcl:"count,optional"`

	// Web servers face the internet and get a public address unless the
	// manifest says otherwise; database servers stay private.
	PublicIP *bool `hcl:"public_ip,optional"`
}

type LoadBalancer struct {
	Name          string `hcl:"name,label"`
	ResourceGroup string `hcl:"resource_group"`
	Sku           string `hcl:"sku,optional"`
	FrontendPort  int    `hcl:"frontend_port,optional"`
	BackendPort   int    `hcl:"backend_port,optional"`
	ProbePort     int    `hcl:"probe_port,optional"`
	Backend       string `hcl:"backend"`
}

type StorageAccount struct {
	Name          string `hcl:"name,label"`
	ResourceGroup string `hcl:"resource_group"`
	Tier          string `hcl:"tier,optional"`
	Replication   string `hcl:"replication,optional"`
}

type AppServicePlan struct {
	Name          string `hcl:"name,label"`
	ResourceGroup string `hcl:"resource_group"`
	Kind          string `hcl:"kind,optional"`
	Sku           string `hcl:"sku"`
}

type AppInsights struct {
	Name            string `hcl:"name,label"`
	ResourceGroup   string `hcl:"resource_group"`
	ApplicationType string `hcl:"application_type,optional"`
}

type FunctionApp struct {
	Name           string       `hcl:"name,label"`
	ResourceGroup  string       `hcl:"resource_group"`
	Plan           string       `hcl:"plan"`
	StorageAccount string       `hcl:"storage_account"`
	AppInsights    string       `hcl:"app_insights,optional"`
	Runtime        string       `hcl:"runtime,optional"`
	AppSettings    *appSettings `hcl:"app_settings,block"`

	// Resolved from AppSettings during Load, once resource references are
	// known.
	Settings map[string]string
}

// appSettings defers decoding: its attributes may reference other resources,
// so they are evaluated in a second pass against the reference context.
type appSettings struct {
	Body hcl.Body `hcl:",remain"`
}

const (
	defaultCosmosKind        = "GlobalDocumentDB"
	defaultCosmosConsistency = "Session"
	defaultStorageTier       = "Standard"
	defaultStorageRepl       = "LRS"
	defaultPlanKind          = "functionapp"
	defaultRuntime           = "custom"
	defaultAppType           = "web"

	defaultAddressSpace  = "10.0.0.0/16"
	defaultSubnetPrefix  = "10.0.0.0/24"
	defaultRuleProtocol  = "Tcp"
	defaultRuleDirection = "Inbound"
	defaultRuleAccess    = "Allow"
	defaultIPSku         = "Standard"
	defaultIPAllocation  = "Static"
	defaultVMSize        = "Standard_B1s"
	defaultLBSku         = "Standard"
	defaultLBPort        = 80

	RoleWeb = "web"
	RoleDB  = "db"
)

// Image returns the OS image a machine of this role is provisioned from:
// plain Windows Server for web machines, SQL Server for database machines.
func (v *VirtualMachine) Image() string {
	if v.Role == RoleDB {
		return "MicrosoftSQLServer:sql2019-ws2019:sqldev-gen2"
	}
	return "MicrosoftWindowsServer:WindowsServer:2019-Datacenter"
}

// HasPublicIP reports whether the machine gets a public address. Defaults are
// applied during Load, so the pointer is always set afterwards.
func (v *VirtualMachine) HasPublicIP() bool {
	return v.PublicIP != nil && *v.PublicIP
}

// InstanceNames expands the declaration into concrete machine names. A single
// machine keeps its declared name; a scaled set is numbered from zero.
func (v *VirtualMachine) InstanceNames() []string {
	if v.Count <= 1 {
		return []string{v.Name}
	}
	names := make([]string, 0, v.Count)
	for i := 0; i < v.Count; i++ {
		names = append(names, fmt.Sprintf("%s%d", v.Name, i))
	}
	return names
}

func (m *Manifest) applyDefaults() {
	for _, nsg := range m.SecurityGroups {
		for _, rule := range nsg.Rules {
			if rule.Protocol == "" {
				rule.Protocol = defaultRuleProtocol
			}
			if rule.Direction == "" {
				rule.Direction = defaultRuleDirection
			}
			if rule.Access == "" {
				rule.Access = defaultRuleAccess
			}
		}
	}
	for _, vnet := range m.VirtualNetworks {
		if vnet.AddressSpace == "" {
			vnet.AddressSpace = defaultAddressSpace
		}
		for _, subnet := range vnet.Subnets {
			if subnet.AddressPrefix == "" {
				subnet.AddressPrefix = defaultSubnetPrefix
			}
		}
	}
	for _, ip := range m.PublicIPs {
		if ip.Sku == "" {
			ip.Sku = defaultIPSku
		}
		if ip.Allocation == "" {
			ip.Allocation = defaultIPAllocation
		}
	}
	for _, vm := range m.VirtualMachines {
		if vm.Role == "" {
			vm.Role = RoleWeb
		}
		if vm.Size == "" {
			vm.Size = defaultVMSize
		}
		if vm.Count == 0 {
			vm.Count = 1
		}
		if vm.PublicIP == nil {
			public := vm.Role == RoleWeb
			vm.PublicIP = &public
		}
	}
	for _, lb := range m.LoadBalancers {
		if lb.Sku == "" {
			lb.Sku = defaultLBSku
		}
		if lb.FrontendPort == 0 {
			lb.FrontendPort = defaultLBPort
		}
		if lb.BackendPort == 0 {
			lb.BackendPort = defaultLBPort
		}
		if lb.ProbePort == 0 {
			lb.ProbePort = defaultLBPort
		}
	}
	for _, acc := range m.CosmosAccounts {
		if acc.Kind == "" {
			acc.Kind = defaultCosmosKind
		}
		if acc.Consistency == "" {
			acc.Consistency = defaultCosmosConsistency
		}
	}
	for _, sa := range m.StorageAccounts {
		if sa.Tier == "" {
			sa.Tier = defaultStorageTier
		}
		if sa.Replication == "" {
			sa.Replication = defaultStorageRepl
		}
	}
	for _, plan := range m.ServicePlans {
		if plan.Kind == "" {
			plan.Kind = defaultPlanKind
		}
	}
	for _, ai := range m.Insights {
		if ai.ApplicationType == "" {
			ai.ApplicationType = defaultAppType
		}
	}
	for _, fa := range m.FunctionApps {
		if fa.Runtime == "" {
			fa.Runtime = defaultRuntime
		}
	}
	for _, rg := range m.ResourceGroups {
		if rg.Location == "" && m.Project != nil {
			rg.Location = m.Project.Location
		}
	}
}
