package webgpu

import "github.com/born-ml/quickrelu/internal/quickrelu"

// workgroupSize is the number of invocations per workgroup.
const workgroupSize = 256

// maxWorkgroupsPerDim is the WebGPU default limit on dispatch size per dimension.
const maxWorkgroupsPerDim = 65535

// quickreluPrelude holds the per-element formulas shared by every entry point.
// positive/negative mirror max(x, 0) and min(0, x): x < 0 is the only test,
// so NaN and -0 are handled like the host backends.
const quickreluPrelude = `
struct Params {
    size: u32,
    leak: f32,
}

fn qrelu_positive(x: f32) -> f32 {
    return select(x, 0.0, x < 0.0);
}

fn qrelu_negative(x: f32) -> f32 {
    return select(0.0, x, x < 0.0);
}

fn qrelu_indicator(b: bool) -> f32 {
    return select(0.0, 1.0, b);
}

fn qrelu_index(gid: vec3<u32>, groups: vec3<u32>) -> u32 {
    return gid.x + gid.y * groups.x * 256u;
}
`

const forwardBindings = `
@group(0) @binding(0) var<storage, read> data: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;
@group(0) @binding(2) var<uniform> params: Params;
`

const backwardBindings = `
@group(0) @binding(0) var<storage, read> data: array<f32>;
@group(0) @binding(1) var<storage, read> der_output: array<f32>;
@group(0) @binding(2) var<storage, read_write> der_data: array<f32>;
@group(0) @binding(3) var<uniform> params: Params;
`

// forwardPlainShader computes result = max(data, 0).
const forwardPlainShader = quickreluPrelude + forwardBindings + `
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>, @builtin(num_workgroups) groups: vec3<u32>) {
    let idx = qrelu_index(gid, groups);
    if (idx < params.size) {
        result[idx] = qrelu_positive(data[idx]);
    }
}
`

// forwardLeakyShader computes result = max(data, 0) + leak*min(data, 0).
const forwardLeakyShader = quickreluPrelude + forwardBindings + `
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>, @builtin(num_workgroups) groups: vec3<u32>) {
    let idx = qrelu_index(gid, groups);
    if (idx < params.size) {
        let x = data[idx];
        result[idx] = qrelu_positive(x) + params.leak * qrelu_negative(x);
    }
}
`

// backwardPlainShader computes der_data = der_output * (data > 0).
const backwardPlainShader = quickreluPrelude + backwardBindings + `
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>, @builtin(num_workgroups) groups: vec3<u32>) {
    let idx = qrelu_index(gid, groups);
    if (idx < params.size) {
        der_data[idx] = der_output[idx] * qrelu_indicator(data[idx] > 0.0);
    }
}
`

// backwardLeakyShader computes der_data = der_output*(data > 0) + leak*(data <= 0).
const backwardLeakyShader = quickreluPrelude + backwardBindings + `
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>, @builtin(num_workgroups) groups: vec3<u32>) {
    let idx = qrelu_index(gid, groups);
    if (idx < params.size) {
        let x = data[idx];
        der_data[idx] = der_output[idx] * qrelu_indicator(x > 0.0) + params.leak * qrelu_indicator(x <= 0.0);
    }
}
`

// backwardLeakyChainRuleShader computes der_data = der_output*(data > 0) + leak*der_output*(data <= 0).
const backwardLeakyChainRuleShader = quickreluPrelude + backwardBindings + `
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>, @builtin(num_workgroups) groups: vec3<u32>) {
    let idx = qrelu_index(gid, groups);
    if (idx < params.size) {
        let x = data[idx];
        let dy = der_output[idx];
        der_data[idx] = dy * qrelu_indicator(x > 0.0) + params.leak * dy * qrelu_indicator(x <= 0.0);
    }
}
`

// program names a compiled shader and its pipeline.
type program struct {
	name string
	code string
}

var (
	programForwardPlain      = program{"quickrelu_forward_plain", forwardPlainShader}
	programForwardLeaky      = program{"quickrelu_forward_leaky", forwardLeakyShader}
	programBackwardPlain     = program{"quickrelu_backward_plain", backwardPlainShader}
	programBackwardLeaky     = program{"quickrelu_backward_leaky", backwardLeakyShader}
	programBackwardChainRule = program{"quickrelu_backward_chain_rule", backwardLeakyChainRuleShader}
)

// dispatchSize returns the workgroup grid covering n elements. Grids wider
// than the per-dimension limit spill into y; qrelu_index folds them back.
func dispatchSize(n int) (x, y uint32) {
	groups := (n + workgroupSize - 1) / workgroupSize
	if groups <= maxWorkgroupsPerDim {
		//nolint:gosec // G115: groups is bounded by maxWorkgroupsPerDim.
		return uint32(groups), 1
	}
	rows := (groups + maxWorkgroupsPerDim - 1) / maxWorkgroupsPerDim
	//nolint:gosec // G115: rows is bounded by n / (workgroupSize*maxWorkgroupsPerDim).
	return maxWorkgroupsPerDim, uint32(rows)
}

// forwardProgram selects the forward shader for leak. The regime is decided
// here, once per call.
func forwardProgram(leak float32) program {
	if quickrelu.Leaky(leak) {
		return programForwardLeaky
	}
	return programForwardPlain
}

// backwardProgram selects the backward shader for leak and gradient mode.
func backwardProgram(leak float32, g quickrelu.Gradient) program {
	switch {
	case !quickrelu.Leaky(leak):
		return programBackwardPlain
	case g == quickrelu.GradientChainRule:
		return programBackwardChainRule
	default:
		return programBackwardLeaky
	}
}
