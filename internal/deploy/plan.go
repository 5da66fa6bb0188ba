package deploy

import (
	"fmt"
	"io"
	"strings"
)

// PlannedResource is one provisioning step.
type PlannedResource struct {
	Kind    string
	Name    string
	Details string
}

// Plan orders the manifest into provisioning steps: groups first, then the
// network fabric (security groups before the subnets that attach them),
// machines and balancers, then the serverless resources, function apps last
// because they wire everything together.
func (m *Manifest) Plan() []PlannedResource {
	var plan []PlannedResource

	for _, rg := range m.ResourceGroups {
		plan = append(plan, PlannedResource{
			Kind:    "resource_group",
			Name:    rg.Name,
			Details: fmt.Sprintf("location=%s", rg.Location),
		})
	}
	for _, nsg := range m.SecurityGroups {
		ruleNames := make([]string, 0, len(nsg.Rules))
		for _, rule := range nsg.Rules {
			ruleNames = append(ruleNames, fmt.Sprintf("%s(%s:%s,%d)",
				rule.Name, rule.Protocol, rule.DestinationPort, rule.Priority))
		}
		plan = append(plan, PlannedResource{
			Kind: "network_security_group",
			Name: nsg.Name,
			Details: fmt.Sprintf("group=%s rules=%s",
				nsg.ResourceGroup, strings.Join(ruleNames, ",")),
		})
	}
	for _, vnet := range m.VirtualNetworks {
		subnetNames := make([]string, 0, len(vnet.Subnets))
		for _, subnet := range vnet.Subnets {
			detail := subnet.Name + "=" + subnet.AddressPrefix
			if subnet.SecurityGroup != "" {
				detail += "@" + subnet.SecurityGroup
			}
			subnetNames = append(subnetNames, detail)
		}
		plan = append(plan, PlannedResource{
			Kind: "virtual_network",
			Name: vnet.Name,
			Details: fmt.Sprintf("group=%s address_space=%s subnets=%s",
				vnet.ResourceGroup, vnet.AddressSpace, strings.Join(subnetNames, ",")),
		})
	}
	for _, ip := range m.PublicIPs {
		plan = append(plan, PlannedResource{
			Kind:    "public_ip",
			Name:    ip.Name,
			Details: fmt.Sprintf("group=%s sku=%s allocation=%s", ip.ResourceGroup, ip.Sku, ip.Allocation),
		})
	}
	for _, vm := range m.VirtualMachines {
		for _, instance := range vm.InstanceNames() {
			details := fmt.Sprintf("group=%s role=%s size=%s image=%s subnet=%s/%s nic=%s_interface",
				vm.ResourceGroup, vm.Role, vm.Size, vm.Image(),
				vm.VirtualNetwork, vm.Subnet, instance)
			if vm.HasPublicIP() {
				details += fmt.Sprintf(" public_ip=%s_ip", instance)
			}
			plan = append(plan, PlannedResource{
				Kind:    "virtual_machine",
				Name:    instance,
				Details: details,
			})
		}
	}
	for _, lb := range m.LoadBalancers {
		plan = append(plan, PlannedResource{
			Kind: "load_balancer",
			Name: lb.Name,
			Details: fmt.Sprintf("group=%s sku=%s frontend=%d backend=%d probe=%d pool=%s",
				lb.ResourceGroup, lb.Sku, lb.FrontendPort, lb.BackendPort, lb.ProbePort,
				lb.Backend),
		})
	}
	for _, acc := range m.CosmosAccounts {
		plan = append(plan, PlannedResource{
			Kind: "cosmos_account",
			Name: acc.Name,
			Details: fmt.Sprintf("group=%s kind=%s consistency=%s database=%s container=%s",
				acc.ResourceGroup, acc.Kind, acc.Consistency,
				acc.Database.Name, acc.Database.Container.Name),
		})
	}
	for _, sa := range m.StorageAccounts {
		plan = append(plan, PlannedResource{
			Kind: "storage_account",
			Name: sa.Name,
			Details: fmt.Sprintf("group=%s tier=%s replication=%s",
				sa.ResourceGroup, sa.Tier, sa.Replication),
		})
	}
	for _, sp := range m.ServicePlans {
		plan = append(plan, PlannedResource{
			Kind:    "app_service_plan",
			Name:    sp.Name,
			Details: fmt.Sprintf("group=%s kind=%s sku=%s", sp.ResourceGroup, sp.Kind, sp.Sku),
		})
	}
	for _, ai := range m.Insights {
		plan = append(plan, PlannedResource{
			Kind:    "app_insights",
			Name:    ai.Name,
			Details: fmt.Sprintf("group=%s type=%s", ai.ResourceGroup, ai.ApplicationType),
		})
	}
	for _, fa := range m.FunctionApps {
		plan = append(plan, PlannedResource{
			Kind: "function_app",
			Name: fa.Name,
			Details: fmt.Sprintf("group=%s plan=%s storage=%s runtime=%s",
				fa.ResourceGroup, fa.Plan, fa.StorageAccount, fa.Runtime),
		})
	}

	return plan
}

// RenderPlan writes the plan, one step per line, followed by the resolved app
// settings of every function app.
func (m *Manifest) RenderPlan(w io.Writer) {
	fmt.Fprintf(w, "Plan for project %q (%s):\n", m.Project.Name, m.Project.Location)

	for i, step := range m.Plan() {
		fmt.Fprintf(w, "%3d. %-18s %-24s %s\n", i+1, step.Kind, step.Name, step.Details)
	}

	for _, fa := range m.FunctionApps {
		if len(fa.Settings) == 0 {
			continue
		}
		fmt.Fprintf(w, "\napp settings for %s:\n", fa.Name)
		for _, name := range fa.SettingNames() {
			fmt.Fprintf(w, "  %s = %s\n", name, fa.Settings[name])
		}
	}
}
