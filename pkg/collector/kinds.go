// Copyright 2026 The kubectl-smart Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package collector

import "github.com/kubectl-smart/kubectl-smart/pkg/model"

// kubectlResourceName maps a ResourceKind to the lowercase plural
// kubectl resource argument.
var kubectlResourceName = map[model.ResourceKind]string{
	model.KindPod:                "pods",
	model.KindDeployment:         "deployments",
	model.KindReplicaSet:         "replicasets",
	model.KindStatefulSet:        "statefulsets",
	model.KindDaemonSet:          "daemonsets",
	model.KindJob:                "jobs",
	model.KindCronJob:            "cronjobs",
	model.KindService:            "services",
	model.KindIngress:            "ingresses",
	model.KindConfigMap:          "configmaps",
	model.KindSecret:             "secrets",
	model.KindPVC:                "persistentvolumeclaims",
	model.KindPV:                 "persistentvolumes",
	model.KindStorageClass:       "storageclasses",
	model.KindNode:               "nodes",
	model.KindNamespace:          "namespaces",
	model.KindServiceAccount:     "serviceaccounts",
	model.KindRole:               "roles",
	model.KindRoleBinding:        "rolebindings",
	model.KindClusterRole:        "clusterroles",
	model.KindClusterRoleBinding: "clusterrolebindings",
	model.KindNetworkPolicy:      "networkpolicies",
	model.KindHPA:                "horizontalpodautoscalers",
	model.KindVPA:                "verticalpodautoscalers",
	model.KindEndpoints:          "endpoints",
}

// ResourceName returns the kubectl plural resource argument for kind,
// or "" if unknown.
func ResourceName(kind model.ResourceKind) string {
	return kubectlResourceName[kind]
}
