package deploy

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Load parses and validates a deployment manifest. App settings are resolved
// against the declared resources, so a reference like
// cosmos_account.movies_db.connection_string becomes a provider placeholder
// the provisioning pipeline substitutes later.
func Load(path string) (*Manifest, error) {
	parser := hclparse.NewParser()

	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
	}

	var manifest Manifest
	diags = gohcl.DecodeBody(hclFile.Body, nil, &manifest)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
	}

	manifest.applyDefaults()

	if err := manifest.validate(); err != nil {
		return nil, err
	}

	evalCtx := manifest.referenceContext()
	for _, fa := range manifest.FunctionApps {
		settings, err := resolveSettings(fa, evalCtx)
		if err != nil {
			return nil, err
		}
		fa.Settings = settings
	}

	return &manifest, nil
}

func (m *Manifest) validate() error {
	if m.Project == nil {
		return fmt.Errorf("manifest must declare a project block")
	}
	if m.Project.Location == "" {
		return fmt.Errorf("project %q must declare a location", m.Project.Name)
	}

	seen := map[string]bool{}
	groups := map[string]bool{}
	plans := map[string]bool{}
	storages := map[string]bool{}
	insights := map[string]bool{}

	checkName := func(kind, name string) error {
		key := kind + "." + name
		if seen[key] {
			return fmt.Errorf("duplicate %s %q", kind, name)
		}
		seen[key] = true
		return nil
	}

	for _, rg := range m.ResourceGroups {
		if err := checkName("resource_group", rg.Name); err != nil {
			return err
		}
		groups[rg.Name] = true
	}

	checkGroupRef := func(kind, name, group string) error {
		if !groups[group] {
			return fmt.Errorf("%s %q references undeclared resource_group %q", kind, name, group)
		}
		return nil
	}

	nsgs := map[string]bool{}
	for _, nsg := range m.SecurityGroups {
		if err := checkName("network_security_group", nsg.Name); err != nil {
			return err
		}
		if err := checkGroupRef("network_security_group", nsg.Name, nsg.ResourceGroup); err != nil {
			return err
		}
		rulePriorities := map[int]string{}
		for _, rule := range nsg.Rules {
			if other, taken := rulePriorities[rule.Priority]; taken {
				return fmt.Errorf("network_security_group %q rules %q and %q share priority %d",
					nsg.Name, other, rule.Name, rule.Priority)
			}
			rulePriorities[rule.Priority] = rule.Name
		}
		nsgs[nsg.Name] = true
	}

	subnets := map[string]bool{}
	for _, vnet := range m.VirtualNetworks {
		if err := checkName("virtual_network", vnet.Name); err != nil {
			return err
		}
		if err := checkGroupRef("virtual_network", vnet.Name, vnet.ResourceGroup); err != nil {
			return err
		}
		if len(vnet.Subnets) == 0 {
			return fmt.Errorf("virtual_network %q must declare at least one subnet block", vnet.Name)
		}
		for _, subnet := range vnet.Subnets {
			if err := checkName("subnet", vnet.Name+"/"+subnet.Name); err != nil {
				return err
			}
			if subnet.SecurityGroup != "" && !nsgs[subnet.SecurityGroup] {
				return fmt.Errorf("subnet %q references undeclared network_security_group %q",
					subnet.Name, subnet.SecurityGroup)
			}
			subnets[vnet.Name+"/"+subnet.Name] = true
		}
	}

	for _, ip := range m.PublicIPs {
		if err := checkName("public_ip", ip.Name); err != nil {
			return err
		}
		if err := checkGroupRef("public_ip", ip.Name, ip.ResourceGroup); err != nil {
			return err
		}
	}

	vms := map[string]bool{}
	for _, vm := range m.VirtualMachines {
		if err := checkName("virtual_machine", vm.Name); err != nil {
			return err
		}
		if err := checkGroupRef("virtual_machine", vm.Name, vm.ResourceGroup); err != nil {
			return err
		}
		if vm.Role != RoleWeb && vm.Role != RoleDB {
			return fmt.Errorf("virtual_machine %q has unknown role %q", vm.Name, vm.Role)
		}
		if vm.Count < 1 {
			return fmt.Errorf("virtual_machine %q count must be positive", vm.Name)
		}
		if !subnets[vm.VirtualNetwork+"/"+vm.Subnet] {
			return fmt.Errorf("virtual_machine %q references undeclared subnet %q in virtual_network %q",
				vm.Name, vm.Subnet, vm.VirtualNetwork)
		}
		vms[vm.Name] = true
	}

	for _, lb := range m.LoadBalancers {
		if err := checkName("load_balancer", lb.Name); err != nil {
			return err
		}
		if err := checkGroupRef("load_balancer", lb.Name, lb.ResourceGroup); err != nil {
			return err
		}
		if !vms[lb.Backend] {
			return fmt.Errorf("load_balancer %q references undeclared virtual_machine %q",
				lb.Name, lb.Backend)
		}
	}

	for _, acc := range m.CosmosAccounts {
		if err := checkName("cosmos_account", acc.Name); err != nil {
			return err
		}
		if err := checkGroupRef("cosmos_account", acc.Name, acc.ResourceGroup); err != nil {
			return err
		}
		if acc.Database == nil {
			return fmt.Errorf("cosmos_account %q must declare a database block", acc.Name)
		}
		if acc.Database.Container == nil {
			return fmt.Errorf("cosmos_account %q must declare a container block", acc.Name)
		}
	}

	for _, sa := range m.StorageAccounts {
		if err := checkName("storage_account", sa.Name); err != nil {
			return err
		}
		if err := checkGroupRef("storage_account", sa.Name, sa.ResourceGroup); err != nil {
			return err
		}
		storages[sa.Name] = true
	}

	for _, plan := range m.ServicePlans {
		if err := checkName("app_service_plan", plan.Name); err != nil {
			return err
		}
		if err := checkGroupRef("app_service_plan", plan.Name, plan.ResourceGroup); err != nil {
			return err
		}
		plans[plan.Name] = true
	}

	for _, ai := range m.Insights {
		if err := checkName("app_insights", ai.Name); err != nil {
			return err
		}
		if err := checkGroupRef("app_insights", ai.Name, ai.ResourceGroup); err != nil {
			return err
		}
		insights[ai.Name] = true
	}

	for _, fa := range m.FunctionApps {
		if err := checkName("function_app", fa.Name); err != nil {
			return err
		}
		if err := checkGroupRef("function_app", fa.Name, fa.ResourceGroup); err != nil {
			return err
		}
		if !plans[fa.Plan] {
			return fmt.Errorf("function_app %q references undeclared app_service_plan %q", fa.Name, fa.Plan)
		}
		if !storages[fa.StorageAccount] {
			return fmt.Errorf("function_app %q references undeclared storage_account %q",
				fa.Name, fa.StorageAccount)
		}
		if fa.AppInsights != "" && !insights[fa.AppInsights] {
			return fmt.Errorf("function_app %q references undeclared app_insights %q",
				fa.Name, fa.AppInsights)
		}
	}

	return nil
}

// referenceContext exposes declared resources as HCL variables. Values that
// only exist after provisioning (keys, connection strings) are placeholder
// tokens keyed by resource.
func (m *Manifest) referenceContext() *hcl.EvalContext {
	cosmos := map[string]cty.Value{}
	for _, acc := range m.CosmosAccounts {
		cosmos[acc.Name] = cty.ObjectVal(map[string]cty.Value{
			"name":              cty.StringVal(acc.Name),
			"endpoint":          cty.StringVal(fmt.Sprintf("https://%s.documents.azure.com:443/", acc.Name)),
			"primary_key":       placeholder("cosmos_account", acc.Name, "primary_key"),
			"connection_string": placeholder("cosmos_account", acc.Name, "connection_string"),
			"database":          cty.StringVal(acc.Database.Name),
			"container":         cty.StringVal(acc.Database.Container.Name),
		})
	}

	storage := map[string]cty.Value{}
	for _, sa := range m.StorageAccounts {
		storage[sa.Name] = cty.ObjectVal(map[string]cty.Value{
			"name":              cty.StringVal(sa.Name),
			"connection_string": placeholder("storage_account", sa.Name, "connection_string"),
		})
	}

	appInsights := map[string]cty.Value{}
	for _, ai := range m.Insights {
		appInsights[ai.Name] = cty.ObjectVal(map[string]cty.Value{
			"name":                cty.StringVal(ai.Name),
			"instrumentation_key": placeholder("app_insights", ai.Name, "instrumentation_key"),
		})
	}

	publicIPs := map[string]cty.Value{}
	for _, ip := range m.PublicIPs {
		publicIPs[ip.Name] = cty.ObjectVal(map[string]cty.Value{
			"name":       cty.StringVal(ip.Name),
			"ip_address": placeholder("public_ip", ip.Name, "ip_address"),
		})
	}

	loadBalancers := map[string]cty.Value{}
	for _, lb := range m.LoadBalancers {
		loadBalancers[lb.Name] = cty.ObjectVal(map[string]cty.Value{
			"name":        cty.StringVal(lb.Name),
			"frontend_ip": placeholder("load_balancer", lb.Name, "frontend_ip"),
		})
	}

	variables := map[string]cty.Value{}
	if len(cosmos) > 0 {
		variables["cosmos_account"] = cty.ObjectVal(cosmos)
	}
	if len(storage) > 0 {
		variables["storage_account"] = cty.ObjectVal(storage)
	}
	if len(appInsights) > 0 {
		variables["app_insights"] = cty.ObjectVal(appInsights)
	}
	if len(publicIPs) > 0 {
		variables["public_ip"] = cty.ObjectVal(publicIPs)
	}
	if len(loadBalancers) > 0 {
		variables["load_balancer"] = cty.ObjectVal(loadBalancers)
	}

	return &hcl.EvalContext{Variables: variables}
}

func placeholder(kind, name, attribute string) cty.Value {
	return cty.StringVal(fmt.Sprintf("ref:%s/%s/%s", kind, name, attribute))
}

func resolveSettings(fa *FunctionApp, evalCtx *hcl.EvalContext) (map[string]string, error) {
	settings := map[string]string{}
	if fa.AppSettings == nil {
		return settings, nil
	}

	attrs, diags := fa.AppSettings.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("function_app %q app_settings: %w", fa.Name, diags)
	}

	for name, attr := range attrs {
		value, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("function_app %q setting %q: %w", fa.Name, name, diags)
		}
		converted, err := convert.Convert(value, cty.String)
		if err != nil {
			return nil, fmt.Errorf("function_app %q setting %q: %w", fa.Name, name, err)
		}
		settings[name] = converted.AsString()
	}
	return settings, nil
}

// SettingNames returns the resolved app setting keys in a stable order.
func (f *FunctionApp) SettingNames() []string {
	names := make([]string, 0, len(f.Settings))
	for name := range f.Settings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
